package constants

const (
	NOT_ADMIN      = "Bạn không có quyền truy cập"
	INVALID_LOGIN  = "Sai tên đăng nhập hoặc mật khẩu"
	ORDER_NOT_FOND = "Không tìm thấy đơn hàng"
	INVALID_BODY   = "Dữ liệu không hợp lệ"
)
