package domain

// CallerIdentity is the authenticated account a request acts on behalf of.
// It is resolved once per request and passed explicitly into every scoped operation.
type CallerIdentity struct {
	UserID       uint64 // Authenticated account id
	IsSuperAdmin bool   // Unrestricted visibility across all accounts
}

// NewCaller builds the identity for userID, deriving super-admin status from superAdminID
func NewCaller(userID, superAdminID uint64) CallerIdentity {
	return CallerIdentity{UserID: userID, IsSuperAdmin: userID == superAdminID}
}
