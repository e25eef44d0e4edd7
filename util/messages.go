package util

const (
	EMAIL_AND_PASSWORD_REQUIRED  = "please provide email and password"
	INVALID_CREDENTIALS          = "invalid email or password"
	ACCOUNT_DEACTIVATED          = "account is deactivated, please contact the administrator"
	NOT_AUTHORIZED_NO_TOKEN      = "not authorized, no token"
	NOT_AUTHORIZED_TOKEN_FAILED  = "not authorized, token failed"
	USER_NOT_FOUND_OR_INVALID    = "user not found or invalid token"
	TOO_MANY_LOGIN_ATTEMPTS      = "too many failed login attempts, please try again later"
	INTERNAL_SERVER_ERROR        = "internal server error"
	ACCOUNT_ALREADY_EXISTS       = "an account with this email, registration number or license number already exists"
	HOSPITAL_NOT_FOUND           = "hospital not found"
	STAFF_NOT_FOUND              = "staff member not found"
	REJECTION_REASON_REQUIRED    = "rejection reason is required"
	CURRENT_PASSWORD_INCORRECT   = "current password is incorrect"
	BOOTSTRAP_ADMIN_READ_ONLY    = "the bootstrap administrator cannot be modified"
	NO_FIELDS_PROVIDED_TO_UPDATE = "no fields provided to update"
	INVALID_ACCOUNT_KIND         = "invalid account type"
	LOGIN_SUCCESSFUL             = "login successful"
	HOSPITAL_REGISTERED          = "hospital registered successfully, awaiting approval"
	PASSWORD_CHANGED             = "password changed successfully"
	RATE_LIMIT_EXCEEDED          = "rate limit exceeded"
	HOSPITAL_ACCOUNT_REMOVED     = "hospital account no longer exists"
	HOSPITAL_ACCOUNT_DEACTIVATED = "hospital account is deactivated"
	HOSPITAL_ALREADY_APPROVED    = "hospital is already approved"
	PROFILE_UPDATED              = "profile updated successfully"
	HOSPITAL_UPDATED             = "hospital updated successfully"
	STAFF_CREATED                = "staff member created successfully"
	DOCTOR_CREATED               = "doctor created successfully"
	STAFF_UPDATED                = "staff member updated successfully"
	STAFF_DELETED                = "staff member deleted successfully"
	ADMIN_CREATED                = "administrator created successfully"
	INVALID_APPROVAL_STATUS      = "invalid approval status"
)
