package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/acadstack/qcatalog-backend/internal/model"
	"github.com/acadstack/qcatalog-backend/internal/storage"
	"github.com/acadstack/qcatalog-backend/internal/store"
)

// CatalogService is the sole entry point for catalog reads and mutations.
// It owns the load→mutate→save lifecycle: the document is loaded once at
// startup and every mutation runs on a clone under the write lock, which is
// published only after the gateway confirms the save. A failed save
// therefore never leaks a half-committed document, and concurrent writers
// cannot lose each other's updates.
type CatalogService struct {
	mu      sync.RWMutex
	doc     *model.Document
	gateway storage.Gateway
	log     zerolog.Logger
}

// NewCatalogService loads the persisted document (bootstrapping an empty
// one on first run) and returns a ready service.
func NewCatalogService(ctx context.Context, gateway storage.Gateway, log zerolog.Logger) (*CatalogService, error) {
	doc, err := gateway.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogService{
		doc:     doc,
		gateway: gateway,
		log:     log.With().Str("component", "catalog_service").Logger(),
	}, nil
}

// mutate clones the current document, applies fn to the clone, saves it and
// publishes it as the new current document. fn errors and save errors both
// leave the served document untouched.
func (s *CatalogService) mutate(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.gateway.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("Save failed, mutation discarded")
		return err
	}
	s.doc = next
	return nil
}

// ─── Branches ───────────────────────────────────────────────────────────

func (s *CatalogService) ListBranches(ctx context.Context) []model.Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Branches
}

func (s *CatalogService) GetBranch(ctx context.Context, branchID string) (*model.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.ResolveBranch(s.doc, branchID)
}

func (s *CatalogService) CreateBranch(ctx context.Context, name, description string) (*model.Branch, error) {
	var created *model.Branch
	err := s.mutate(ctx, func(doc *model.Document) error {
		var err error
		created, err = store.InsertBranch(doc, name, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("branch_id", created.ID).Str("name", name).Msg("Branch created")
	return created, nil
}

func (s *CatalogService) DeleteBranch(ctx context.Context, branchID string) error {
	err := s.mutate(ctx, func(doc *model.Document) error {
		return store.DeleteBranch(doc, branchID)
	})
	if err == nil {
		s.log.Info().Str("branch_id", branchID).Msg("Branch deleted")
	}
	return err
}

// ─── Semesters ──────────────────────────────────────────────────────────

func (s *CatalogService) ListSemesters(ctx context.Context, branchID string) ([]model.Semester, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	branch, err := store.ResolveBranch(s.doc, branchID)
	if err != nil {
		return nil, err
	}
	return branch.Semesters, nil
}

func (s *CatalogService) GetSemester(ctx context.Context, branchID, semesterID string) (*model.Semester, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.ResolveSemester(s.doc, branchID, semesterID)
}

func (s *CatalogService) CreateSemester(ctx context.Context, branchID string, number int) (*model.Semester, error) {
	var created *model.Semester
	err := s.mutate(ctx, func(doc *model.Document) error {
		var err error
		created, err = store.InsertSemester(doc, branchID, number)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("semester_id", created.ID).Int("number", number).Msg("Semester created")
	return created, nil
}

func (s *CatalogService) DeleteSemester(ctx context.Context, branchID, semesterID string) error {
	return s.mutate(ctx, func(doc *model.Document) error {
		return store.DeleteSemester(doc, branchID, semesterID)
	})
}

// ─── Subjects ───────────────────────────────────────────────────────────

func (s *CatalogService) ListSubjects(ctx context.Context, branchID, semesterID string) ([]model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	semester, err := store.ResolveSemester(s.doc, branchID, semesterID)
	if err != nil {
		return nil, err
	}
	return semester.Subjects, nil
}

func (s *CatalogService) GetSubject(ctx context.Context, branchID, semesterID, subjectID string) (*model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.ResolveSubject(s.doc, branchID, semesterID, subjectID)
}

func (s *CatalogService) CreateSubject(ctx context.Context, branchID, semesterID, name, code string) (*model.Subject, error) {
	var created *model.Subject
	err := s.mutate(ctx, func(doc *model.Document) error {
		var err error
		created, err = store.InsertSubject(doc, branchID, semesterID, name, code)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("subject_id", created.ID).Str("code", code).Msg("Subject created")
	return created, nil
}

func (s *CatalogService) DeleteSubject(ctx context.Context, branchID, semesterID, subjectID string) error {
	return s.mutate(ctx, func(doc *model.Document) error {
		return store.DeleteSubject(doc, branchID, semesterID, subjectID)
	})
}

// ─── Questions ──────────────────────────────────────────────────────────

func (s *CatalogService) ListQuestions(ctx context.Context, branchID, semesterID, subjectID string) ([]model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subject, err := store.ResolveSubject(s.doc, branchID, semesterID, subjectID)
	if err != nil {
		return nil, err
	}
	return subject.Questions, nil
}

func (s *CatalogService) GetQuestion(ctx context.Context, branchID, semesterID, subjectID, questionID string) (*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.ResolveQuestion(s.doc, branchID, semesterID, subjectID, questionID)
}

func (s *CatalogService) CreateQuestion(ctx context.Context, branchID, semesterID, subjectID string, in store.QuestionInput) (*model.Question, error) {
	var created *model.Question
	err := s.mutate(ctx, func(doc *model.Document) error {
		var err error
		created, err = store.InsertQuestion(doc, branchID, semesterID, subjectID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("question_id", created.QuestionID).Str("type", created.Type).Msg("Question created")
	return created, nil
}

func (s *CatalogService) DeleteQuestion(ctx context.Context, branchID, semesterID, subjectID, questionID string) error {
	return s.mutate(ctx, func(doc *model.Document) error {
		return store.DeleteQuestion(doc, branchID, semesterID, subjectID, questionID)
	})
}
