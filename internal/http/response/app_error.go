package response

// AppError 统一错误包装；Soft 表示预期内的业务空操作
type AppError struct {
	Code    int
	Message string
	Err     error
	Soft    bool
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapSoftError 包装预期内的业务错误（不按故障记录）
func WrapSoftError(code int, message string, err error) *AppError {
	appErr := WrapError(code, message, err)
	appErr.Soft = true
	return appErr
}
