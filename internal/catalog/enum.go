package catalog

// Enum maps integer codes to localized labels.
type Enum map[int64]string

// Label returns the label for code.
func (e Enum) Label(code int64) (string, bool) {
	label, ok := e[code]
	return label, ok
}

var (
	flashModes = Enum{
		0:  "未使用",
		1:  "使用",
		9:  "強制使用",
		16: "關閉",
		24: "未使用，自動模式",
		25: "使用，自動模式",
		32: "未使用，無閃光燈功能",
		65: "使用，紅眼減少",
		73: "強制使用，紅眼減少",
		89: "使用，自動模式，紅眼減少",
	}

	whiteBalance = Enum{0: "自動", 1: "手動"}

	sceneModes = Enum{0: "標準", 1: "風景", 2: "人像", 3: "夜景"}

	contrast = Enum{0: "正常", 1: "柔和", 2: "強烈"}

	saturation = Enum{0: "正常", 1: "低飽和度", 2: "高飽和度"}

	sharpness = Enum{0: "正常", 1: "柔和", 2: "強烈"}

	orientations = Enum{
		1: "正常",
		2: "水平翻轉",
		3: "旋轉180度",
		4: "垂直翻轉",
		5: "水平翻轉+順時針90度",
		6: "順時針90度",
		7: "水平翻轉+逆時針90度",
		8: "逆時針90度",
	}

	resolutionUnits = Enum{1: "無", 2: "英寸", 3: "公分"}
)

var enums = map[uint16]Enum{
	TagFlash:          flashModes,
	TagWhiteBalance:   whiteBalance,
	TagSceneMode:      sceneModes,
	TagContrast:       contrast,
	TagSaturation:     saturation,
	TagSharpness:      sharpness,
	TagOrientation:    orientations,
	TagResolutionUnit: resolutionUnits,
}

// EnumFor returns the enumeration table attached to tag id.
func EnumFor(id uint16) (Enum, bool) {
	e, ok := enums[id]
	return e, ok
}
