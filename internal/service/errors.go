package service

import "errors"

var (
	// Tenant errors
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrTenantExists      = errors.New("tenant already exists")
	ErrSchemaNameInvalid = errors.New("schema name must be a valid postgres identifier")

	// Subscription errors
	ErrNoSubscription       = errors.New("no subscription found")
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrInvalidSubscription  = errors.New("subscription must use either a package or selected features, not both")
	ErrPackageNotFound      = errors.New("package not found")
	ErrFeatureNotFound      = errors.New("one or more feature keys are unknown or inactive")
	ErrUnknownLimitKind     = errors.New("unknown limit kind")

	// Security errors
	ErrWhitelistEntryNotFound = errors.New("whitelist entry not found")
	ErrInvalidIPAddress       = errors.New("invalid IP address")
)
