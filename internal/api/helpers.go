package api

// requireTechnician validates the shared-secret bearer header on
// mutating endpoints. The returned error already carries the 401 code.
func (s *Server) requireTechnician(authHeader string) error {
	return s.guard.Authorize(authHeader)
}
