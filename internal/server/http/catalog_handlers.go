package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/helixir/music-catalog-service/internal/domain"
	"github.com/helixir/music-catalog-service/internal/repository"
)

// createWorkRequest is the JSON request body for creating a work by hand,
// outside the CSV import path.
type createWorkRequest struct {
	Title           string `json:"title" validate:"required,max=1000"`
	CategoryID      *int64 `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	CompositionYear *int   `json:"composition_year,omitempty" validate:"omitempty,gte=1000,lte=2100"`
	KeySignature    string `json:"key_signature,omitempty" validate:"max=50"`
	FormOrGenre     string `json:"form_or_genre,omitempty" validate:"max=200"`
	Comments        string `json:"comments,omitempty" validate:"max=10000"`
	Rating          *int   `json:"rating,omitempty" validate:"omitempty,gte=1,lte=6"`
}

// listWorks handles GET /works with optional title, category_id and person_id filters.
func (s *Server) listWorks(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaginationParams(r)

	filter := repository.WorkFilter{
		TitleContains: r.URL.Query().Get("title"),
		Limit:         limit,
		Offset:        offset,
	}

	if param := r.URL.Query().Get("category_id"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "category_id must be a positive integer")
			return
		}
		filter.CategoryID = &id
	}

	if param := r.URL.Query().Get("person_id"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "person_id must be a positive integer")
			return
		}
		filter.PersonID = &id
	}

	works, totalCount, err := s.workRepo.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]workResponse, len(works))
	for i, work := range works {
		responses[i] = domainWorkToResponse(work)
	}

	writeJSON(w, http.StatusOK, listWorksResponse{
		Works:         responses,
		NextPageToken: encodePageToken(offset, limit, int(totalCount)),
		TotalCount:    int(totalCount),
	})
}

// getWork handles GET /works/{workID}, returning the work with its
// contributors and publications.
func (s *Server) getWork(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "workID"), "work_id")
	if !ok {
		return
	}

	work, err := s.workRepo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	contributors, err := s.workRepo.ListContributors(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	publications, err := s.publicationRepo.ListByWork(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := workDetailResponse{
		workResponse: domainWorkToResponse(work),
		Contributors: make([]contributorResponse, len(contributors)),
		Publications: make([]publicationResponse, len(publications)),
	}
	for i, c := range contributors {
		resp.Contributors[i] = domainContributorToResponse(c)
	}
	for i, p := range publications {
		resp.Publications[i] = domainPublicationToResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

// createWork handles POST /works.
func (s *Server) createWork(w http.ResponseWriter, r *http.Request) {
	var req createWorkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	work := &domain.Work{
		Title:           strings.TrimSpace(req.Title),
		CategoryID:      req.CategoryID,
		CompositionYear: req.CompositionYear,
		KeySignature:    req.KeySignature,
		FormOrGenre:     req.FormOrGenre,
		Comments:        req.Comments,
		Rating:          req.Rating,
	}

	if err := s.workRepo.Create(r.Context(), work); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainWorkToResponse(work))
}

// listPeople handles GET /people with an optional name filter.
func (s *Server) listPeople(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaginationParams(r)

	filter := repository.PersonFilter{
		NameContains: r.URL.Query().Get("name"),
		Limit:        limit,
		Offset:       offset,
	}

	people, totalCount, err := s.personRepo.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]personResponse, len(people))
	for i, p := range people {
		responses[i] = domainPersonToResponse(p)
	}

	writeJSON(w, http.StatusOK, listPeopleResponse{
		People:        responses,
		NextPageToken: encodePageToken(offset, limit, int(totalCount)),
		TotalCount:    int(totalCount),
	})
}

// listCategories handles GET /categories.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categoryRepo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]categoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = domainCategoryToResponse(c)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": responses})
}
