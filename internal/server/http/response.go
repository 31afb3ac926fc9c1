package httpserver

import (
	"time"

	"github.com/helixir/music-catalog-service/internal/domain"
)

// Publisher response types for JSON serialization.

type publisherResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type publisherDetailResponse struct {
	publisherResponse
	PublicationCount int64 `json:"publication_count"`
}

type listPublishersResponse struct {
	Publishers    []publisherResponse `json:"publishers"`
	NextPageToken string              `json:"next_page_token,omitempty"`
	TotalCount    int                 `json:"total_count"`
}

type duplicateGroupResponse struct {
	PublisherID int64               `json:"publisher_id"`
	Name        string              `json:"name"`
	Confidence  float64             `json:"confidence"`
	Suggestions []publisherResponse `json:"suggestions"`
}

type listDuplicatesResponse struct {
	Groups    []duplicateGroupResponse `json:"groups"`
	Threshold float64                  `json:"threshold"`
}

type mergeResponse struct {
	SourceID   int64  `json:"source_id"`
	TargetID   int64  `json:"target_id"`
	Repointed  int64  `json:"repointed"`
	Renamed    bool   `json:"renamed"`
	Warning    string `json:"warning,omitempty"`
	FailedStep string `json:"failed_step,omitempty"`
}

// mergeErrorResponse reports how far a failed merge got, so the caller can
// tell a merge that changed nothing from one that repointed publications but
// left the source publisher behind.
type mergeErrorResponse struct {
	Error                 string `json:"error"`
	FailedStep            string `json:"failed_step"`
	PublicationsRepointed bool   `json:"publications_repointed"`
}

// Work response types.

type workResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	CategoryID      *int64    `json:"category_id,omitempty"`
	CompositionYear *int      `json:"composition_year,omitempty"`
	KeySignature    string    `json:"key_signature,omitempty"`
	FormOrGenre     string    `json:"form_or_genre,omitempty"`
	Comments        string    `json:"comments,omitempty"`
	Rating          *int      `json:"rating,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type contributorResponse struct {
	PersonID   int64  `json:"person_id"`
	Role       string `json:"role"`
	SequenceNo *int   `json:"sequence_no,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type publicationResponse struct {
	ID              int64  `json:"id"`
	PublisherID     *int64 `json:"publisher_id,omitempty"`
	PublicationYear *int   `json:"publication_year,omitempty"`
	PlateNumber     string `json:"plate_number,omitempty"`
	EditionNote     string `json:"edition_note,omitempty"`
}

type workDetailResponse struct {
	workResponse
	Contributors []contributorResponse `json:"contributors"`
	Publications []publicationResponse `json:"publications"`
}

type listWorksResponse struct {
	Works         []workResponse `json:"works"`
	NextPageToken string         `json:"next_page_token,omitempty"`
	TotalCount    int            `json:"total_count"`
}

// People and category response types.

type personResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	BirthYear *int   `json:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type listPeopleResponse struct {
	People        []personResponse `json:"people"`
	NextPageToken string           `json:"next_page_token,omitempty"`
	TotalCount    int              `json:"total_count"`
}

type categoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Converter functions

func domainPublisherToResponse(p *domain.Publisher) publisherResponse {
	return publisherResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

func domainGroupToResponse(g domain.SimilarityGroup) duplicateGroupResponse {
	suggestions := make([]publisherResponse, len(g.Suggestions))
	for i := range g.Suggestions {
		suggestions[i] = domainPublisherToResponse(&g.Suggestions[i])
	}
	return duplicateGroupResponse{
		PublisherID: g.ID,
		Name:        g.Name,
		Confidence:  g.Confidence,
		Suggestions: suggestions,
	}
}

func domainWorkToResponse(w *domain.Work) workResponse {
	return workResponse{
		ID:              w.ID,
		Title:           w.Title,
		CategoryID:      w.CategoryID,
		CompositionYear: w.CompositionYear,
		KeySignature:    w.KeySignature,
		FormOrGenre:     w.FormOrGenre,
		Comments:        w.Comments,
		Rating:          w.Rating,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func domainContributorToResponse(c domain.WorkContributor) contributorResponse {
	return contributorResponse{
		PersonID:   c.PersonID,
		Role:       string(c.Role),
		SequenceNo: c.SequenceNo,
		Notes:      c.Notes,
	}
}

func domainPublicationToResponse(p *domain.Publication) publicationResponse {
	return publicationResponse{
		ID:              p.ID,
		PublisherID:     p.PublisherID,
		PublicationYear: p.PublicationYear,
		PlateNumber:     p.PlateNumber,
		EditionNote:     p.EditionNote,
	}
}

func domainPersonToResponse(p *domain.Person) personResponse {
	return personResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		BirthYear: p.BirthYear,
		DeathYear: p.DeathYear,
		Notes:     p.Notes,
	}
}

func domainCategoryToResponse(c *domain.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
