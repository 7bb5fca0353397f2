package utils

import "context"

type contextKey string

const AdminKey contextKey = "admin"

// SetAdminContext marks the request as carrying a valid admin token.
func SetAdminContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, AdminKey, true)
}

func IsAdminFromContext(ctx context.Context) bool {
	admin, ok := ctx.Value(AdminKey).(bool)
	return ok && admin
}
