package server

import (
	"net/http"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/service"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listBoards(w http.ResponseWriter, r *http.Request) {
	page, err := intParam(r, "page", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	size, err := intParam(r, "size", constants.BoardListLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.boards.List(r.Context(), page, size, r.URL.Query().Get("sortBy"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", boardPageView{
		Content:       toBoardViews(p.Items),
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.Total,
		TotalPages:    p.TotalPages,
	})
}

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "boardId"), "boardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.boards.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", toBoardView(b))
}

func (s *Server) createBoard(w http.ResponseWriter, r *http.Request) {
	var req service.BoardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.boards.Create(r.Context(), principal(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, "board created", toBoardView(b))
}

func (s *Server) updateBoard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "boardId"), "boardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req service.BoardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.boards.Update(r.Context(), principal(r), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "board updated", toBoardView(b))
}

func (s *Server) deleteBoard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "boardId"), "boardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.boards.Delete(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "board deleted", nil)
}

func (s *Server) searchBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.boards.Search(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", toBoardViews(boards))
}

func (s *Server) boardsByAuthor(w http.ResponseWriter, r *http.Request) {
	boards, err := s.boards.ByAuthor(r.Context(), chi.URLParam(r, "author"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", toBoardViews(boards))
}

func (s *Server) recentBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.boards.Recent(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", toBoardViews(boards))
}

func (s *Server) popularBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.boards.Popular(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", toBoardViews(boards))
}

func (s *Server) authorStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.boards.AuthorStats(r.Context(), chi.URLParam(r, "author"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", authorStatsView{
		Author:     st.Author,
		PostCount:  st.PostCount,
		TotalViews: st.TotalViews,
		LatestPost: st.LatestPost,
	})
}

func (s *Server) countBoards(w http.ResponseWriter, r *http.Request) {
	n, err := s.boards.Count(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", map[string]int{"count": n})
}

func (s *Server) boardExists(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "boardId"), "boardId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	exists, err := s.boards.Exists(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, "", map[string]bool{"exists": exists})
}
