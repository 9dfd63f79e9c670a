package argdemo

import "strings"

// Hosts match on these strings when they scrape the runner's output, so
// they must stay byte-for-byte stable.
const (
	SuccessLine      = "Python脚本执行成功！"
	VersionLabel     = "Python版本: "
	TimeLabel        = "当前时间: "
	ScriptLabel      = "脚本名称: "
	NameLinePrefix   = "你好, "
	AgeLabel         = "年龄: "
	JobLabel         = "职业: "
	BirthYearLabel   = "出生年份: "
	BirthYearUnknown = "无法计算（年龄不是有效数字）"
	NoArgsNotice     = "没有提供参数，使用默认问候。"
	UsageHint        = "Usage: python demo.py <name> <age> <job>"
	JSONHeader       = "【JSON响应】"
	NoArgsHeader     = "【无参数模式】"
	NoArgsHint       = "请提供参数以查看更多功能"
	DoneLine         = "脚本执行完成！"
	ResponseMessage  = "数据来自Python脚本"
	ResponseStatus   = "success"

	DefaultName  = "Guest"
	UnknownValue = "Unknown"

	separatorWidth = 50
)

// Separator is the line that opens and closes the banner.
var Separator = strings.Repeat("*", separatorWidth)

const (
	bannerTimeLayout = "2006-01-02 15:04:05"
	isoSecondsLayout = "2006-01-02T15:04:05"
	isoMicrosLayout  = "2006-01-02T15:04:05.000000"
)
