package server

import (
	"net/http"

	"lol-tracker/internal/domain"
	"lol-tracker/internal/middleware"
	"lol-tracker/internal/service"

	"github.com/go-chi/chi/v5"
)

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := s.users.Signup(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, "signup completed", toUserView(u))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.users.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "login successful", loginView{
		Token:     res.Token,
		TokenType: "Bearer",
		ExpiresIn: int64(res.ExpiresIn.Seconds()),
		User:      toUserView(res.User),
	})
}

// logout is acknowledged only; tokens are stateless and expire on their own.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	ok(w, "logged out", nil)
}

func (s *Server) checkUsername(w http.ResponseWriter, r *http.Request) {
	available, err := s.users.UsernameAvailable(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", map[string]bool{"available": available})
}

func (s *Server) checkEmail(w http.ResponseWriter, r *http.Request) {
	available, err := s.users.EmailAvailable(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", map[string]bool{"available": available})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "userId"), "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", toUserView(u))
}

func (s *Server) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", toUserView(u))
}

func (s *Server) userStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.users.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", userStatsView{
		TotalUsers:       st.TotalUsers,
		AdminUsers:       st.AdminUsers,
		RegularUsers:     st.RegularUsers,
		RecentSignups:    st.RecentSignups,
		LatestSignupDate: st.LatestSignupDate,
	})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "userId"), "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.users.Delete(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "user deleted", nil)
}

// principal is only called behind RequireAuth.
func principal(r *http.Request) domain.Principal {
	p, _ := middleware.PrincipalFrom(r.Context())
	return p
}
