package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helixir/music-catalog-service/internal/dedup"
	"github.com/helixir/music-catalog-service/internal/domain"
	"github.com/helixir/music-catalog-service/internal/repository"
)

// duplicateScanPageSize is the page size used when loading the full publisher
// list for a duplicate scan.
const duplicateScanPageSize = 1000

// renamePublisherRequest is the JSON request body for renaming a publisher.
type renamePublisherRequest struct {
	Name string `json:"name" validate:"required,max=500"`
}

// mergePublisherRequest is the JSON request body for merging a publisher into
// a target. NewName optionally renames the surviving target.
type mergePublisherRequest struct {
	TargetID int64  `json:"target_id" validate:"required,gt=0"`
	NewName  string `json:"new_name,omitempty" validate:"omitempty,max=500"`
}

// rejectDuplicateRequest dismisses a suggested pairing from duplicate scans.
type rejectDuplicateRequest struct {
	AnchorID     int64 `json:"anchor_id" validate:"required,gt=0"`
	SuggestionID int64 `json:"suggestion_id" validate:"required,gt=0"`
}

// listPublishers handles GET /publishers.
func (s *Server) listPublishers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaginationParams(r)

	filter := repository.PublisherFilter{
		NameContains: r.URL.Query().Get("name"),
		Limit:        limit,
		Offset:       offset,
	}

	publishers, totalCount, err := s.publisherRepo.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]publisherResponse, len(publishers))
	for i, p := range publishers {
		responses[i] = domainPublisherToResponse(p)
	}

	writeJSON(w, http.StatusOK, listPublishersResponse{
		Publishers:    responses,
		NextPageToken: encodePageToken(offset, limit, int(totalCount)),
		TotalCount:    int(totalCount),
	})
}

// getPublisher handles GET /publishers/{publisherID}.
func (s *Server) getPublisher(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "publisherID"), "publisher_id")
	if !ok {
		return
	}

	publisher, err := s.publisherRepo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	count, err := s.publicationRepo.CountByPublisher(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, publisherDetailResponse{
		publisherResponse: domainPublisherToResponse(publisher),
		PublicationCount:  count,
	})
}

// renamePublisher handles PATCH /publishers/{publisherID}.
func (s *Server) renamePublisher(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "publisherID"), "publisher_id")
	if !ok {
		return
	}

	var req renamePublisherRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.merger.Rename(r.Context(), id, req.Name); err != nil {
		writeDomainError(w, err)
		return
	}

	publisher, err := s.publisherRepo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainPublisherToResponse(publisher))
}

// deletePublisher handles DELETE /publishers/{publisherID}. Deleting a
// publisher that still has publications fails; merge it instead.
func (s *Server) deletePublisher(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "publisherID"), "publisher_id")
	if !ok {
		return
	}

	if err := s.publisherRepo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// mergePublisher handles POST /publishers/{publisherID}/merge. The path
// publisher is the source; it is absorbed into the target from the body.
func (s *Server) mergePublisher(w http.ResponseWriter, r *http.Request) {
	sourceID, ok := parseID(w, chi.URLParam(r, "publisherID"), "publisher_id")
	if !ok {
		return
	}

	var req mergePublisherRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.merger.Merge(r.Context(), sourceID, req.TargetID, req.NewName)

	var mergeErr *domain.MergeError
	if err != nil && errors.As(err, &mergeErr) {
		if mergeErr.Step == domain.MergeStepRename && result != nil {
			// The duplicate is gone; only the optional rename failed.
			if s.metrics != nil {
				s.metrics.RecordMergeCompleted(result.Repointed)
				s.metrics.RecordMergeFailed(string(mergeErr.Step))
			}
			writeJSON(w, http.StatusOK, mergeResponse{
				SourceID:   sourceID,
				TargetID:   req.TargetID,
				Repointed:  result.Repointed,
				Renamed:    false,
				Warning:    "publishers merged but the rename failed",
				FailedStep: string(mergeErr.Step),
			})
			return
		}
		if s.metrics != nil {
			s.metrics.RecordMergeFailed(string(mergeErr.Step))
		}
		// A repoint failure means nothing changed; a delete failure means
		// publications were already moved to the target and only the
		// source publisher record survives.
		status, _ := domainErrorStatus(mergeErr.Cause)
		writeJSON(w, status, mergeErrorResponse{
			Error:                 mergeFailureMessage(mergeErr.Step),
			FailedStep:            string(mergeErr.Step),
			PublicationsRepointed: mergeErr.Step == domain.MergeStepDelete,
		})
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordMergeCompleted(result.Repointed)
	}

	writeJSON(w, http.StatusOK, mergeResponse{
		SourceID:  sourceID,
		TargetID:  req.TargetID,
		Repointed: result.Repointed,
		Renamed:   result.Renamed,
	})
}

// mergeFailureMessage describes a failed merge step to the API caller.
func mergeFailureMessage(step domain.MergeStep) string {
	switch step {
	case domain.MergeStepRepoint:
		return "merge failed before any records were changed"
	case domain.MergeStepDelete:
		return "publications were repointed but the source publisher was not deleted; retry the merge to finish it"
	default:
		return "merge failed"
	}
}

// listDuplicates handles GET /publishers/duplicates. It scans the full
// publisher list for near-duplicate names, filtered by previously dismissed
// pairings. An optional threshold query parameter overrides the configured
// similarity threshold for this scan.
func (s *Server) listDuplicates(w http.ResponseWriter, r *http.Request) {
	threshold := s.threshold
	if param := r.URL.Query().Get("threshold"); param != "" {
		parsed, err := strconv.ParseFloat(param, 64)
		if err != nil || parsed <= 0 || parsed > 1 {
			// At 0 every publisher pair would group together.
			writeError(w, http.StatusBadRequest, "threshold must be greater than 0 and at most 1")
			return
		}
		threshold = parsed
	}

	publishers, err := s.loadAllPublishers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	groups := dedup.FindSimilarGroups(publishers, threshold)

	s.rejectedMu.Lock()
	groups = s.rejected.Filter(groups)
	s.rejectedMu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordDuplicateScan(len(groups))
	}

	responses := make([]duplicateGroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = domainGroupToResponse(g)
	}

	writeJSON(w, http.StatusOK, listDuplicatesResponse{
		Groups:    responses,
		Threshold: threshold,
	})
}

// rejectDuplicate handles POST /publishers/duplicates/rejections.
func (s *Server) rejectDuplicate(w http.ResponseWriter, r *http.Request) {
	var req rejectDuplicateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.rejectedMu.Lock()
	s.rejected.Add(req.AnchorID, req.SuggestionID)
	total := s.rejected.Len()
	s.rejectedMu.Unlock()

	writeJSON(w, http.StatusOK, map[string]int{"rejections": total})
}

// loadAllPublishers pages through the publisher list. The scan needs the full
// set; publishers come back ordered by name so page boundaries are stable.
func (s *Server) loadAllPublishers(ctx context.Context) ([]domain.Publisher, error) {
	var all []domain.Publisher
	offset := 0

	for {
		filter := repository.PublisherFilter{Limit: duplicateScanPageSize, Offset: offset}
		page, _, err := s.publisherRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			all = append(all, *p)
		}
		if len(page) < duplicateScanPageSize {
			return all, nil
		}
		offset += duplicateScanPageSize
	}
}
