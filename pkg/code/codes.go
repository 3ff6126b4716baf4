package code

// Success codes // 成功码
var (
	Success = NewSuss(200, lang{
		en:    "Success",
		zh_cn: "成功",
	})
	SuccessNoChange = NewSuss(201, lang{
		en:    "Success, nothing changed",
		zh_cn: "成功，无变更",
	})
	// SuccessMediaDropped reports the partial-success create: the entry was
	// saved but its media payload exceeded the document ceiling and was
	// dropped. // 成功，但媒体超限已被丢弃
	SuccessMediaDropped = NewSuss(202, lang{
		en:    "Entry saved, media exceeded the size limit and was dropped",
		zh_cn: "日记已保存，媒体超过大小限制已被丢弃",
	})
)

// Common errors // 通用错误
var (
	ErrorServerInternal = NewError(10000, lang{
		en:    "Server internal error",
		zh_cn: "服务器内部错误",
	})
	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid request parameters",
		zh_cn: "入参错误",
	})
	ErrorNotFoundAPI = NewError(10002, lang{
		en:    "API not found",
		zh_cn: "未找到接口",
	})
	ErrorTooManyRequests = NewError(10003, lang{
		en:    "Too many requests",
		zh_cn: "请求过多",
	})
	ErrorRequestTimeout = NewError(10004, lang{
		en:    "Request timed out",
		zh_cn: "请求超时",
	})
	ErrorDatabaseUnavailable = NewError(10005, lang{
		en:    "Storage temporarily unavailable",
		zh_cn: "存储暂时不可用",
	})
)

// Auth errors // 认证错误
var (
	ErrorNotUserAuthToken = NewError(20001, lang{
		en:    "Sign in required",
		zh_cn: "请先登录",
	})
	ErrorInvalidUserAuthToken = NewError(20002, lang{
		en:    "Invalid or expired token",
		zh_cn: "Token 无效或已过期",
	})
	ErrorUserNotExist = NewError(20003, lang{
		en:    "User does not exist",
		zh_cn: "用户不存在",
	})
	ErrorUserPasswordWrong = NewError(20004, lang{
		en:    "Wrong email or password",
		zh_cn: "邮箱或密码错误",
	})
	ErrorUserAlreadyExists = NewError(20005, lang{
		en:    "User already exists",
		zh_cn: "用户已存在",
	})
	ErrorUserRegisterFailed = NewError(20006, lang{
		en:    "Registration failed",
		zh_cn: "注册失败",
	})
	ErrorUserRegisterDisabled = NewError(20007, lang{
		en:    "Registration is disabled on this server",
		zh_cn: "该服务器已关闭注册",
	})
)

// Entry errors // 日记错误
var (
	ErrorEntryNotFound = NewError(30001, lang{
		en:    "Entry not found",
		zh_cn: "日记不存在",
	})
	ErrorEntryTitleRequired = NewError(30002, lang{
		en:    "Title is required",
		zh_cn: "标题不能为空",
	})
	ErrorEntryContentRequired = NewError(30003, lang{
		en:    "Content is required",
		zh_cn: "内容不能为空",
	})
	ErrorInvalidVideoLink = NewError(30004, lang{
		en:    "Invalid video URL. Only YouTube and Google Drive links are supported",
		zh_cn: "视频链接无效，仅支持 YouTube 和 Google Drive 链接",
	})
	ErrorInvalidTag = NewError(30005, lang{
		en:    "Tags must start with #",
		zh_cn: "标签必须以 # 开头",
	})
	ErrorEntryCreateFailed = NewError(30006, lang{
		en:    "Failed to save entry",
		zh_cn: "日记保存失败",
	})
	ErrorEntryUpdateFailed = NewError(30007, lang{
		en:    "Failed to update entry",
		zh_cn: "日记更新失败",
	})
	ErrorEntryDeleteFailed = NewError(30008, lang{
		en:    "Failed to delete entry",
		zh_cn: "日记删除失败",
	})
)

// Media errors // 媒体错误
var (
	ErrorPayloadTooLarge = NewError(40001, lang{
		en:    "Media file exceeds the size limit",
		zh_cn: "媒体文件超过大小限制",
	})
	ErrorCompressionFailed = NewError(40002, lang{
		en:    "Could not compress image under the size budget",
		zh_cn: "无法将图片压缩到目标大小",
	})
	ErrorUnsupportedMediaType = NewError(40003, lang{
		en:    "Unsupported media type",
		zh_cn: "不支持的媒体类型",
	})
	ErrorUploadFileFailed = NewError(40004, lang{
		en:    "Upload failed",
		zh_cn: "上传失败",
	})
	ErrorInvalidStorageType = NewError(40005, lang{
		en:    "Invalid storage type",
		zh_cn: "存储类型无效",
	})
)
