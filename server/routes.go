package server

func (s *Server) initRoutes() {
	// User registration CRUD
	s.RegisterRouteFunc("POST "+RouteUsers, ChainMiddleware(s.CreateUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteUsers, ChainMiddleware(s.ListUsersHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteUserByID, ChainMiddleware(s.GetUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("DELETE "+RouteUserByID, ChainMiddleware(s.DeleteUserHandler(), s.APIMiddleware()...))

	// OAuth2 handshake
	s.RegisterRouteFunc("GET "+RouteAuthConnect, ChainMiddleware(s.ConnectHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthCallback, ChainMiddleware(s.CallbackHandler(), s.APIMiddleware()...))

	// QuickBooks data
	s.RegisterRouteFunc("GET "+RouteQboProfile, ChainMiddleware(s.ProfileHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteQboRevenueExpense, ChainMiddleware(s.RevenueExpenseHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteQboInvoices, ChainMiddleware(s.InvoicesHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("DELETE "+RouteQboDisconnect, ChainMiddleware(s.DisconnectHandler(), s.APIMiddleware()...))
}
