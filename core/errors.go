package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），也支持 errors.Is（按 Module + Code 比较）
//
// 使用场景：
//   - 过滤错误：INVALID_FILTER_RANGE
//   - 推荐错误：EMPTY_CANDIDATES, NO_LIKED_DATA
//   - 存储错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string `json:"code"`    // 错误代码（如 "EMPTY_CANDIDATES"）
	Message string `json:"message"` // 错误消息
	Module  string `json:"module"`  // 模块名称（如 "filter", "knn", "store"）
	Cause   error  `json:"-"`       // 底层错误（可选）
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap 返回底层错误，配合 errors.Is / errors.As 使用。
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is 使 errors.Is(err, ErrNoLikedData) 这类判断只比较 Module 与 Code，
// 与 Message / Cause 无关。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Module == "" || e.Module == t.Module)
}

// IsDomainError 检查错误链上是否存在 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链上的第一个 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// WrapDomainError 创建携带底层错误的领域错误
func WrapDomainError(module, code, message string, cause error) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误

	// 推荐链路错误代码
	ErrorCodeEmptyCandidates    = "EMPTY_CANDIDATES"     // 候选集为空（非致命）
	ErrorCodeNoLikedData        = "NO_LIKED_DATA"        // 没有可用的喜欢记录（前置条件不满足）
	ErrorCodeInvalidFilterRange = "INVALID_FILTER_RANGE" // 过滤区间非法（min > max）
)

// 模块名称常量
const (
	ModuleStore       = "store"       // 存储模块
	ModuleCatalog     = "catalog"     // 影片目录模块
	ModuleFilter      = "filter"      // 过滤模块
	ModuleFeature     = "feature"     // 特征编码模块
	ModuleProfile     = "profile"     // 用户画像模块
	ModuleKNN         = "knn"         // 近邻检索模块
	ModuleRecommender = "recommender" // 推荐编排模块
)

// 推荐链路的哨兵错误，配合 errors.Is 使用（只比较 Code）。
var (
	// ErrEmptyCandidates 表示过滤后（或剔除已评价影片后）没有候选
	ErrEmptyCandidates = &DomainError{Code: ErrorCodeEmptyCandidates, Message: "no candidates"}

	// ErrNoLikedData 表示喜欢列表在目录中解析后为空
	ErrNoLikedData = &DomainError{Code: ErrorCodeNoLikedData, Message: "no liked movies found in catalog"}

	// ErrInvalidFilterRange 表示过滤区间非法
	ErrInvalidFilterRange = &DomainError{Code: ErrorCodeInvalidFilterRange, Message: "invalid filter range"}
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	return hasCode(err, ErrorCodeNotSupported)
}

// IsEmptyCandidates 检查错误是否为 EMPTY_CANDIDATES
func IsEmptyCandidates(err error) bool {
	return hasCode(err, ErrorCodeEmptyCandidates)
}

// IsNoLikedData 检查错误是否为 NO_LIKED_DATA
func IsNoLikedData(err error) bool {
	return hasCode(err, ErrorCodeNoLikedData)
}

// IsInvalidFilterRange 检查错误是否为 INVALID_FILTER_RANGE
func IsInvalidFilterRange(err error) bool {
	return hasCode(err, ErrorCodeInvalidFilterRange)
}

// IsInvalidInput 检查错误是否属于调用方输入问题。
// NO_LIKED_DATA 与 INVALID_FILTER_RANGE 都归为输入无效。
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrorCodeInvalidInput) || IsNoLikedData(err) || IsInvalidFilterRange(err)
}

func hasCode(err error, code string) bool {
	return err != nil && errors.Is(err, &DomainError{Code: code})
}
