package domain

import "strings"

// Canonical role strings. The backend is inconsistent about casing
// ("User" vs "user", "ServiceProvider" vs "serviceprovider"), so the
// lower-case set used by the mobile root redirect is canonical and RouteFor
// normalizes its input before lookup.
const (
	RoleSuperAdmin              = "superadmin"
	RoleAccountant              = "accountant"
	RoleSales                   = "sales"
	RoleCustomerSupport         = "customer support executive"
	RoleHR                      = "hr"
	RoleServiceProvider         = "serviceprovider"
	RoleServiceProviderEmployee = "serviceprovideremployee"
	RoleUser                    = "user"
)

// Navigation targets handed back to the UI layer after authentication.
const (
	RouteLogin                   = "/login"
	RouteOnboarding              = "/onboarding"
	RouteSuperAdmin              = "/superadmin"
	RouteAccountant              = "/accountant"
	RouteSales                   = "/sales"
	RouteSupport                 = "/support"
	RouteHR                      = "/hr"
	RouteServiceProvider         = "/service-provider"
	RouteServiceProviderEmployee = "/service-provider-employee"
	RouteUser                    = "/user"
)

var roleRoutes = map[string]string{
	RoleSuperAdmin:              RouteSuperAdmin,
	RoleAccountant:              RouteAccountant,
	RoleSales:                   RouteSales,
	RoleCustomerSupport:         RouteSupport,
	RoleHR:                      RouteHR,
	RoleServiceProvider:         RouteServiceProvider,
	RoleServiceProviderEmployee: RouteServiceProviderEmployee,
	RoleUser:                    RouteUser,
}

// RouteFor resolves a role string to its post-auth navigation target. The
// mapping is total: any unrecognized, empty, or absent role resolves to
// RouteLogin so the caller is never left without a destination.
func RouteFor(role string) string {
	if route, ok := roleRoutes[NormalizeRole(role)]; ok {
		return route
	}
	return RouteLogin
}

// NormalizeRole lower-cases and trims a backend-provided role string.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// KnownRole reports whether role belongs to the closed role set.
func KnownRole(role string) bool {
	_, ok := roleRoutes[NormalizeRole(role)]
	return ok
}
