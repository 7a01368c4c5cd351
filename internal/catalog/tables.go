package catalog

// Tag ids that carry a formatting rule.
const (
	TagOrientation    uint16 = 274
	TagResolutionUnit uint16 = 296
	TagAperture       uint16 = 37377
	TagISO            uint16 = 37380
	TagShutter        uint16 = 37387
	TagFlash          uint16 = 37395
	TagFocalLength    uint16 = 37396
	TagWhiteBalance   uint16 = 41987
	TagSceneMode      uint16 = 41990
	TagContrast       uint16 = 41992
	TagSaturation     uint16 = 41993
	TagSharpness      uint16 = 41994
)

// Pointer tags link IFDs together.
const (
	TagExifIFD    uint16 = 34665
	TagGPSIFD     uint16 = 34853
	TagInteropIFD uint16 = 40965
)

var generalNames = map[uint16]string{
	256:   "ImageWidth",
	257:   "ImageLength",
	258:   "BitsPerSample",
	259:   "Compression",
	262:   "PhotometricInterpretation",
	270:   "ImageDescription",
	271:   "Make",
	272:   "Model",
	273:   "StripOffsets",
	274:   "Orientation",
	277:   "SamplesPerPixel",
	278:   "RowsPerStrip",
	279:   "StripByteCounts",
	282:   "XResolution",
	283:   "YResolution",
	284:   "PlanarConfiguration",
	296:   "ResolutionUnit",
	301:   "TransferFunction",
	305:   "Software",
	306:   "DateTime",
	315:   "Artist",
	318:   "WhitePoint",
	319:   "PrimaryChromaticities",
	513:   "JPEGInterchangeFormat",
	514:   "JPEGInterchangeFormatLength",
	529:   "YCbCrCoefficients",
	530:   "YCbCrSubSampling",
	531:   "YCbCrPositioning",
	532:   "ReferenceBlackWhite",
	33432: "Copyright",
	33434: "ExposureTime",
	33437: "FNumber",
	34665: "ExifIFDPointer",
	34850: "ExposureProgram",
	34852: "SpectralSensitivity",
	34853: "GPSInfoIFDPointer",
	34855: "ISOSpeedRatings",
	34856: "OECF",
	34864: "SensitivityType",
	36864: "ExifVersion",
	36867: "DateTimeOriginal",
	36868: "DateTimeDigitized",
	36880: "OffsetTime",
	36881: "OffsetTimeOriginal",
	36882: "OffsetTimeDigitized",
	37121: "ComponentsConfiguration",
	37122: "CompressedBitsPerPixel",
	37377: "ShutterSpeedValue",
	37378: "ApertureValue",
	37379: "BrightnessValue",
	37380: "ExposureBiasValue",
	37381: "MaxApertureValue",
	37382: "SubjectDistance",
	37383: "MeteringMode",
	37384: "LightSource",
	37385: "Flash",
	37386: "FocalLength",
	37396: "SubjectArea",
	37500: "MakerNote",
	37510: "UserComment",
	37520: "SubSecTime",
	37521: "SubSecTimeOriginal",
	37522: "SubSecTimeDigitized",
	40960: "FlashpixVersion",
	40961: "ColorSpace",
	40962: "PixelXDimension",
	40963: "PixelYDimension",
	40964: "RelatedSoundFile",
	40965: "InteroperabilityIFDPointer",
	41483: "FlashEnergy",
	41484: "SpatialFrequencyResponse",
	41486: "FocalPlaneXResolution",
	41487: "FocalPlaneYResolution",
	41488: "FocalPlaneResolutionUnit",
	41492: "SubjectLocation",
	41493: "ExposureIndex",
	41495: "SensingMethod",
	41728: "FileSource",
	41729: "SceneType",
	41730: "CFAPattern",
	41985: "CustomRendered",
	41986: "ExposureMode",
	41987: "WhiteBalance",
	41988: "DigitalZoomRatio",
	41989: "FocalLengthIn35mmFilm",
	41990: "SceneCaptureType",
	41991: "GainControl",
	41992: "Contrast",
	41993: "Saturation",
	41994: "Sharpness",
	41995: "DeviceSettingDescription",
	41996: "SubjectDistanceRange",
	42016: "ImageUniqueID",
	42032: "CameraOwnerName",
	42033: "BodySerialNumber",
	42034: "LensSpecification",
	42035: "LensMake",
	42036: "LensModel",
	42037: "LensSerialNumber",
}

var generalRules = map[uint16]Rule{
	TagAperture:       RuleAperture,
	TagShutter:        RuleShutter,
	TagFocalLength:    RuleFocalLength,
	TagISO:            RuleISO,
	TagFlash:          RuleEnum,
	TagWhiteBalance:   RuleEnum,
	TagSceneMode:      RuleEnum,
	TagContrast:       RuleEnum,
	TagSaturation:     RuleEnum,
	TagSharpness:      RuleEnum,
	TagOrientation:    RuleEnum,
	TagResolutionUnit: RuleEnum,

	270:   RuleText,
	271:   RuleText,
	272:   RuleText,
	305:   RuleText,
	306:   RuleText,
	315:   RuleText,
	33432: RuleText,
	36867: RuleText,
	36868: RuleText,
	36880: RuleText,
	36881: RuleText,
	36882: RuleText,
	37510: RuleText,
	37520: RuleText,
	37521: RuleText,
	37522: RuleText,
	40964: RuleText,
	42016: RuleText,
	42032: RuleText,
	42033: RuleText,
	42035: RuleText,
	42036: RuleText,
	42037: RuleText,
}

// important is the curated subset shown in the human-facing section,
// keyed by tag id with its localized label. Some labels repeat; the
// reconciler keeps the first value it sees for a label.
var important = map[uint16]string{
	271:   "相機品牌",
	272:   "相機型號",
	306:   "拍攝時間",
	36867: "原始拍攝時間",
	37377: "光圈值",
	37387: "快門速度",
	37380: "ISO 感光度",
	37396: "焦距",
	37395: "閃光燈",
	41987: "白平衡",
	41990: "場景模式",
	41992: "對比度",
	41993: "飽和度",
	41994: "銳利度",
	42035: "鏡頭品牌",
	42036: "鏡頭型號",
	256:   "圖片寬度",
	257:   "圖片高度",
	274:   "方向",
	296:   "解析度單位",
	282:   "X 解析度",
	283:   "Y 解析度",
	531:   "YCbCr 定位",
	34665: "EXIF 偏移",
	36864: "EXIF 版本",
	40960: "FlashPix 版本",
	40961: "色彩空間",
	40962: "像素 X 維度",
	40963: "像素 Y 維度",
	40965: "互通性 IFD 指標",
	36880: "時區偏移",
	36881: "原始時區偏移",
	36868: "數位化時間",
	37378: "曝光程式",
	37379: "光譜敏感度",
	37381: "光電轉換函數",
	37382: "EXIF 版本",
	37383: "原始日期時間",
	37384: "數位化日期時間",
	37385: "元件配置",
	37386: "壓縮位元數",
	37388: "光圈值",
	37389: "亮度值",
	37390: "曝光偏差值",
	37391: "最大光圈值",
	37392: "主體距離",
	37393: "測光模式",
	37394: "光源",
	37398: "製造商註記",
	37399: "使用者註記",
	37400: "子秒時間",
	37401: "原始子秒時間",
	37402: "數位化子秒時間",
	37500: "FlashPix 版本",
	37510: "色彩空間",
	37520: "像素 X 維度",
	37521: "像素 Y 維度",
	37522: "相關音訊檔案",
	41483: "閃光燈",
	41484: "閃光燈返回光",
	41485: "閃光燈模式",
	41486: "閃光燈功能",
	41487: "閃光燈紅眼模式",
	41488: "閃光燈曝光補償",
	41492: "閃光燈來源",
	41493: "閃光燈狀態",
	41494: "閃光燈模式",
	41985: "自訂渲染",
	41986: "曝光模式",
	41988: "數位變焦比例",
	41989: "35mm 膠片焦距",
	41991: "增益控制",
	41995: "裝置設定描述",
	41996: "主體距離範圍",
	42016: "影像唯一 ID",
	42032: "相機擁有者名稱",
	42033: "機身序號",
	42034: "鏡頭規格",
	42037: "鏡頭序號",
}

// gpsNames maps positional GPS indexes to symbolic names.
var gpsNames = map[uint16]string{
	0:  "GPSVersionID",
	1:  "GPSLatitudeRef",
	2:  "GPSLatitude",
	3:  "GPSLongitudeRef",
	4:  "GPSLongitude",
	5:  "GPSAltitudeRef",
	6:  "GPSAltitude",
	7:  "GPSTimeStamp",
	8:  "GPSSatellites",
	9:  "GPSStatus",
	10: "GPSMeasureMode",
	11: "GPSDOP",
	12: "GPSSpeedRef",
	13: "GPSSpeed",
	14: "GPSTrackRef",
	15: "GPSTrack",
	16: "GPSImgDirectionRef",
	17: "GPSImgDirection",
	18: "GPSMapDatum",
	19: "GPSDestLatitudeRef",
	20: "GPSDestLatitude",
	21: "GPSDestLongitudeRef",
	22: "GPSDestLongitude",
	23: "GPSDestBearingRef",
	24: "GPSDestBearing",
	25: "GPSDestDistanceRef",
	26: "GPSDestDistance",
	27: "GPSProcessingMethod",
	28: "GPSAreaInformation",
	29: "GPSDateStamp",
	30: "GPSDifferential",
}
