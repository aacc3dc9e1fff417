package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrAccountDisabled    ErrCode = "ACCOUNT_DISABLED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"
	ErrNotClassMember   ErrCode = "NOT_CLASS_MEMBER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Evaluation-specific ───────────────────────────────────────────
	ErrSemesterClosed   ErrCode = "SEMESTER_CLOSED"
	ErrSemesterInactive ErrCode = "SEMESTER_INACTIVE"

	// ─── Import ────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Tên đăng nhập hoặc mật khẩu không đúng."
	case ErrAccountDisabled:
		return "Tài khoản của bạn đã bị khóa."
	case ErrTokenRequired:
		return "Yêu cầu token xác thực."
	case ErrTokenInvalid:
		return "Token xác thực không hợp lệ."
	case ErrTokenExpired:
		return "Token xác thực đã hết hạn."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Bạn không có quyền truy cập tài nguyên này."
	case ErrPermissionDenied:
		return "Không đủ quyền thực hiện thao tác này."
	case ErrNotClassMember:
		return "Bạn không thuộc lớp này."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dữ liệu không hợp lệ. Vui lòng kiểm tra lại."
	case ErrInvalidID:
		return "Định dạng ID không hợp lệ."
	case ErrInvalidPayload:
		return "Nội dung yêu cầu không hợp lệ."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Không tìm thấy dữ liệu."
	case ErrConflict:
		return "Dữ liệu đã tồn tại."
	case ErrDependencyExists:
		return "Không thể xóa vì dữ liệu đang được sử dụng."

	// ─── Evaluation-specific ───────────────────────────────────────────
	case ErrSemesterClosed:
		return "Học kỳ đã hết hạn đánh giá."
	case ErrSemesterInactive:
		return "Học kỳ không còn hoạt động."

	// ─── Import ────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "Yêu cầu tải lên tập tin."
	case ErrUnsupportedFile:
		return "Định dạng tập tin không được hỗ trợ."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Quá nhiều yêu cầu. Vui lòng thử lại sau."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Đã xảy ra lỗi máy chủ."
	default:
		return "Đã xảy ra lỗi không xác định."
	}
}
