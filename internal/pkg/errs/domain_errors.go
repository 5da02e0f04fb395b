package errs

// Sentinel errors shared by the command and query use cases. Handlers map
// them to HTTP statuses with errors.Is.
var (
	// Book errors
	ErrBookNotFound = New("book not found")

	// Rental errors
	ErrPartnerRentalNotFound = New("partner rental not found")
	ErrRentalNotFound        = New("rental not found")
	ErrRentalAlreadyStopped  = New("rental already stopped")

	// User errors
	ErrUserNotFound       = New("user not found")
	ErrEmailTaken         = New("email already registered")
	ErrInvalidCredentials = New("invalid credentials")

	// Validation errors
	ErrDomainValidationFailed = New("domain validation failed")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
	ErrTokenGeneration         = New("token generation failed")
)
