package constants

const (
	// SessionCookieName matches the cookie issued by the previous auth stack
	// so existing sessions keep working across the migration.
	SessionCookieName = "better-auth.session_token"

	// ContextKeyUserID is the key used for the authenticated user ID in both
	// the session and the request context.
	ContextKeyUserID = "user_id"

	// SessionKeyActiveOrg stores the organization the user is currently
	// working in. Optional; dashboard pages fall back to the first membership.
	SessionKeyActiveOrg = "active_organization_id"

	// AdminOrgSlug is the reserved organization slug whose members are
	// platform administrators. Membership gates the entire /admin area.
	AdminOrgSlug = "blackdog-admin"

	MinPasswordLength = 8

	// Temporary passwords handed out by user provisioning.
	TempPasswordLength   = 12
	TempPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

	// Minimum length for client-facing names (organization, company,
	// location, city) accepted by the onboarding workflow.
	MinClientNameLength = 2
)
