// Package importer loads parsed CSV works into the catalog. Imports are
// idempotent: works already present under the same title and category are
// skipped, and people, categories and publishers are resolved get-or-create
// by name.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/helixir/music-catalog-service/internal/csvimport"
	"github.com/helixir/music-catalog-service/internal/domain"
	"github.com/helixir/music-catalog-service/internal/observability"
	"github.com/helixir/music-catalog-service/internal/repository"
)

// Config carries the batch sizes for an import run.
type Config struct {
	// WorkBatchSize is the number of works inserted per statement.
	WorkBatchSize int

	// RelationBatchSize is the number of contributor links or publications
	// inserted per statement.
	RelationBatchSize int
}

// Result summarizes one import run for a single layout.
type Result struct {
	RunID    string `json:"run_id"`
	Layout   string `json:"layout"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`

	// People is the number of distinct people referenced by the imported
	// works, resolved get-or-create.
	People int `json:"people"`

	Contributors int `json:"contributors"`
	Publications int `json:"publications"`
}

// Importer orchestrates batch imports of parsed CSV works.
type Importer struct {
	works        repository.WorkRepository
	people       repository.PersonRepository
	categories   repository.CategoryRepository
	publishers   repository.PublisherRepository
	publications repository.PublicationRepository
	cfg          Config
	logger       zerolog.Logger
	metrics      *observability.Metrics
}

// NewImporter creates an importer. Metrics may be nil.
func NewImporter(
	works repository.WorkRepository,
	people repository.PersonRepository,
	categories repository.CategoryRepository,
	publishers repository.PublisherRepository,
	publications repository.PublicationRepository,
	cfg Config,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *Importer {
	if cfg.WorkBatchSize <= 0 {
		cfg.WorkBatchSize = 50
	}
	if cfg.RelationBatchSize <= 0 {
		cfg.RelationBatchSize = 100
	}
	return &Importer{
		works:        works,
		people:       people,
		categories:   categories,
		publishers:   publishers,
		publications: publications,
		cfg:          cfg,
		logger:       logger.With().Str("component", "importer").Logger(),
		metrics:      metrics,
	}
}

// ImportDir imports every layout whose CSV file exists in dir. Missing files
// are skipped, not treated as errors.
func (i *Importer) ImportDir(ctx context.Context, dir string) ([]*Result, error) {
	var results []*Result
	for _, layout := range csvimport.Layouts() {
		path := filepath.Join(dir, layout.FileName())
		result, err := i.ImportFile(ctx, layout, path)
		if err != nil {
			if os.IsNotExist(err) {
				i.logger.Info().Str("layout", string(layout)).Str("path", path).
					Msg("CSV file not present, skipping layout")
				continue
			}
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// ImportFile parses and imports a single CSV file in the given layout.
func (i *Importer) ImportFile(ctx context.Context, layout csvimport.Layout, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, err := csvimport.Parse(layout, f)
	if err != nil {
		return nil, err
	}
	return i.ImportParsed(ctx, layout, parsed)
}

// ImportParsed imports already-parsed works for one layout. Works are created
// in batches; contributor links and publications for each batch are created
// concurrently once the works have their IDs.
func (i *Importer) ImportParsed(ctx context.Context, layout csvimport.Layout, parsed []csvimport.ParsedWork) (*Result, error) {
	runID := uuid.NewString()
	ctx = observability.WithImportRunID(ctx, runID)
	logger := observability.WithImportContext(i.logger, runID, string(layout))

	start := time.Now()
	if i.metrics != nil {
		i.metrics.RecordImportStarted()
	}

	result, err := i.run(ctx, logger, layout, parsed)
	if err != nil {
		if i.metrics != nil {
			i.metrics.RecordImportFailed(time.Since(start).Seconds())
		}
		logger.Error().Err(err).Msg("import failed")
		return nil, err
	}
	result.RunID = runID

	if i.metrics != nil {
		i.metrics.RecordImportCompleted(time.Since(start).Seconds())
		i.metrics.RecordWorksImported(string(layout), result.Imported, result.Skipped)
		i.metrics.RecordPeopleCreated(result.People)
		i.metrics.RecordPublicationsCreated(result.Publications)
	}
	logger.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("people", result.People).
		Int("publications", result.Publications).
		Dur("elapsed", time.Since(start)).
		Msg("import completed")
	return result, nil
}

func (i *Importer) run(ctx context.Context, logger zerolog.Logger, layout csvimport.Layout, parsed []csvimport.ParsedWork) (*Result, error) {
	result := &Result{Layout: string(layout)}

	category, err := i.categories.GetOrCreate(ctx, layout.Category())
	if err != nil {
		return nil, fmt.Errorf("resolving category: %w", err)
	}

	existing, err := i.works.ExistingTitleKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading existing works: %w", err)
	}

	personIDs, err := i.resolvePeople(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("resolving people: %w", err)
	}
	result.People = len(personIDs)

	// Filter out works already in the catalog, and duplicates within the
	// file itself.
	var newWorks []*domain.Work
	var sources []csvimport.ParsedWork
	for _, p := range parsed {
		key := domain.WorkTitleKey(p.Title, category.ID)
		if existing[key] {
			result.Skipped++
			continue
		}
		existing[key] = true
		categoryID := category.ID
		newWorks = append(newWorks, &domain.Work{
			Title:           p.Title,
			CategoryID:      &categoryID,
			CompositionYear: p.CompositionYear,
			KeySignature:    p.Key,
			FormOrGenre:     p.Form,
			Comments:        p.Notes,
		})
		sources = append(sources, p)
	}

	publisherIDs := make(map[string]int64)

	for offset := 0; offset < len(newWorks); offset += i.cfg.WorkBatchSize {
		end := min(offset+i.cfg.WorkBatchSize, len(newWorks))

		created, err := i.works.CreateBatch(ctx, newWorks[offset:end])
		if err != nil {
			return nil, fmt.Errorf("creating works batch at %d: %w", offset, err)
		}
		result.Imported += len(created)

		contributors := i.buildContributors(created, sources[offset:end], personIDs)
		publications, err := i.buildPublications(ctx, created, sources[offset:end], publisherIDs)
		if err != nil {
			return nil, err
		}

		if err := i.createRelations(ctx, contributors, publications); err != nil {
			return nil, fmt.Errorf("creating relations for batch at %d: %w", offset, err)
		}
		result.Contributors += len(contributors)
		result.Publications += len(publications)

		logger.Debug().
			Int("batch_start", offset).
			Int("works", len(created)).
			Int("contributors", len(contributors)).
			Int("publications", len(publications)).
			Msg("imported batch")
	}

	return result, nil
}

// resolvePeople gathers the distinct composer and lyricist names from the
// parsed works and resolves them to IDs in one statement. Lifespans are
// attached so newly created people get their years.
func (i *Importer) resolvePeople(ctx context.Context, parsed []csvimport.ParsedWork) (map[string]int64, error) {
	var people []*domain.Person
	seen := make(map[string]bool)

	add := func(name, lifespan string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		person := &domain.Person{FullName: name}
		if ls := csvimport.ExtractLifespan(lifespan); ls != nil {
			person.BirthYear = ls.BirthYear
			person.DeathYear = ls.DeathYear
		}
		people = append(people, person)
	}

	for _, p := range parsed {
		add(p.Composer, p.ComposerLifespan)
		add(p.Lyricist, p.LyricistLifespan)
	}

	if len(people) == 0 {
		return map[string]int64{}, nil
	}

	resolved, err := i.people.BulkGetOrCreate(ctx, people)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]int64, len(resolved))
	for _, person := range resolved {
		ids[person.FullName] = person.ID
	}
	return ids, nil
}

func (i *Importer) buildContributors(created []*domain.Work, sources []csvimport.ParsedWork, personIDs map[string]int64) []domain.WorkContributor {
	var contributors []domain.WorkContributor
	for idx, work := range created {
		src := sources[idx]
		if id, ok := personIDs[strings.TrimSpace(src.Composer)]; ok {
			seq := 1
			contributors = append(contributors, domain.WorkContributor{
				WorkID:     work.ID,
				PersonID:   id,
				Role:       domain.RoleComposer,
				SequenceNo: &seq,
			})
		}
		if id, ok := personIDs[strings.TrimSpace(src.Lyricist)]; ok {
			seq := 2
			contributors = append(contributors, domain.WorkContributor{
				WorkID:     work.ID,
				PersonID:   id,
				Role:       domain.RoleLyricist,
				SequenceNo: &seq,
			})
		}
	}
	return contributors
}

// buildPublications resolves publisher names sequentially (the cache is not
// safe for concurrent use) and returns the publications to insert.
func (i *Importer) buildPublications(ctx context.Context, created []*domain.Work, sources []csvimport.ParsedWork, publisherIDs map[string]int64) ([]*domain.Publication, error) {
	var publications []*domain.Publication
	for idx, work := range created {
		name := strings.TrimSpace(sources[idx].Publisher)
		if name == "" {
			continue
		}
		id, ok := publisherIDs[name]
		if !ok {
			publisher, err := i.publishers.GetOrCreate(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("resolving publisher %q: %w", name, err)
			}
			id = publisher.ID
			publisherIDs[name] = id
		}
		workID := work.ID
		publisherID := id
		publications = append(publications, &domain.Publication{
			WorkID:      &workID,
			PublisherID: &publisherID,
		})
	}
	return publications, nil
}

// createRelations inserts contributor links and publications concurrently,
// each side chunked by the relation batch size.
func (i *Importer) createRelations(ctx context.Context, contributors []domain.WorkContributor, publications []*domain.Publication) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for offset := 0; offset < len(contributors); offset += i.cfg.RelationBatchSize {
			end := min(offset+i.cfg.RelationBatchSize, len(contributors))
			if err := i.works.AddContributors(gctx, contributors[offset:end]); err != nil {
				return fmt.Errorf("adding contributors: %w", err)
			}
		}
		return nil
	})

	g.Go(func() error {
		for offset := 0; offset < len(publications); offset += i.cfg.RelationBatchSize {
			end := min(offset+i.cfg.RelationBatchSize, len(publications))
			if err := i.publications.CreateBatch(gctx, publications[offset:end]); err != nil {
				return fmt.Errorf("creating publications: %w", err)
			}
		}
		return nil
	})

	return g.Wait()
}
