package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/providers/textgen"
)

type memoryRun struct {
	originalPrompt string
	currentPrompt  string
	status         domain.RunStatus
	options        domain.PromptOptions
	optionSource   string
	scripts        []string
}

type memoryRepo struct {
	sessions map[uuid.UUID]int
	runs     map[uuid.UUID]*memoryRun
	events   []string
	errs     []domain.ErrorLogEntry

	failEvents bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		sessions: make(map[uuid.UUID]int),
		runs:     make(map[uuid.UUID]*memoryRun),
	}
}

func (m *memoryRepo) EnsureSession(ctx context.Context, sessionID uuid.UUID) error {
	m.sessions[sessionID]++
	return nil
}

func (m *memoryRepo) CreateRun(ctx context.Context, prompt string, sessionID *uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	m.runs[id] = &memoryRun{originalPrompt: prompt, currentPrompt: prompt, status: domain.RunStatusCreated}
	return id, nil
}

func (m *memoryRepo) UpdateOptions(ctx context.Context, runID uuid.UUID, options domain.PromptOptions, source string) error {
	run, ok := m.runs[runID]
	if !ok {
		return domain.ErrNotFound
	}
	run.options = options
	run.optionSource = source
	run.status = domain.RunStatusExtracted
	return nil
}

func (m *memoryRepo) UpdateCurrentPrompt(ctx context.Context, runID uuid.UUID, prompt string, status domain.RunStatus) error {
	run, ok := m.runs[runID]
	if !ok {
		return domain.ErrNotFound
	}
	run.currentPrompt = prompt
	run.status = status
	return nil
}

func (m *memoryRepo) InsertScript(ctx context.Context, runID uuid.UUID, text, provider, model string) (uuid.UUID, error) {
	run, ok := m.runs[runID]
	if !ok {
		return uuid.Nil, domain.ErrNotFound
	}
	run.scripts = append(run.scripts, text)
	run.status = domain.RunStatusScriptGenerated
	return uuid.New(), nil
}

func (m *memoryRepo) LogEvent(ctx context.Context, runID *uuid.UUID, eventType string, payload map[string]any, sessionID *uuid.UUID) error {
	if m.failEvents {
		return errors.New("event sink down")
	}
	m.events = append(m.events, eventType)
	return nil
}

func (m *memoryRepo) LogError(ctx context.Context, entry domain.ErrorLogEntry) {
	m.errs = append(m.errs, entry)
}

func (m *memoryRepo) GetRun(ctx context.Context, runID uuid.UUID) (*domain.RunView, error) {
	run, ok := m.runs[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	view := &domain.RunView{
		RunID:          runID,
		OriginalPrompt: run.originalPrompt,
		CurrentPrompt:  run.currentPrompt,
		Status:         run.status,
		Options:        run.options,
	}
	if n := len(run.scripts); n > 0 {
		view.LatestScript = &run.scripts[n-1]
	}
	return view, nil
}

func (m *memoryRepo) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	var out []domain.RunSummary
	for id, run := range m.runs {
		out = append(out, domain.RunSummary{RunID: id, Status: run.status})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ domain.PromptRepository = (*memoryRepo)(nil)

// failingGenerator errors on every operation.
type failingGenerator struct{}

func (failingGenerator) ExtractOptions(ctx context.Context, prompt string) (domain.PromptOptions, *textgen.Usage, error) {
	return domain.PromptOptions{}, nil, domain.NewProviderError("groq api error: 500 boom")
}

func (failingGenerator) EnhancePrompt(ctx context.Context, prompt string, options domain.PromptOptions) (string, *textgen.Usage, error) {
	return "", nil, domain.NewProviderError("groq api error: 500 boom")
}

func (failingGenerator) GenerateScript(ctx context.Context, prompt string, options *domain.PromptOptions) (string, *textgen.Usage, error) {
	return "", nil, domain.NewProviderError("groq api error: 500 boom")
}

func (failingGenerator) ProviderName() string { return "failing" }
func (failingGenerator) ModelName() string    { return "failing-v0" }

func newService(repo *memoryRepo, gen textgen.Generator) *Service {
	return NewService(repo, gen, zerolog.Nop())
}

func TestExtractOptionsCreatesRunAndAdvancesStatus(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	svc := newService(repo, textgen.NewStaticGenerator())
	prompt := "Create a 30 second kids educational video for YouTube in English, vertical format."

	runID, options, err := svc.ExtractOptions(context.Background(), prompt, nil)
	if err != nil {
		t.Fatalf("ExtractOptions returned error: %v", err)
	}
	if options.DurationSeconds == nil || *options.DurationSeconds != 30 {
		t.Fatalf("DurationSeconds = %v", options.DurationSeconds)
	}
	run := repo.runs[runID]
	if run == nil {
		t.Fatal("run not persisted")
	}
	if run.originalPrompt != prompt {
		t.Fatalf("originalPrompt = %q", run.originalPrompt)
	}
	if run.status != domain.RunStatusExtracted {
		t.Fatalf("status = %q, want extracted", run.status)
	}
	if run.optionSource != domain.OptionSourceExtract {
		t.Fatalf("option source = %q", run.optionSource)
	}
	if len(repo.events) != 1 || repo.events[0] != "extract_options" {
		t.Fatalf("events = %v", repo.events)
	}
}

func TestExtractOptionsEnsuresSessionFirst(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	svc := newService(repo, textgen.NewStaticGenerator())
	sessionID := uuid.New()

	for i := 0; i < 2; i++ {
		if _, _, err := svc.ExtractOptions(context.Background(), "A prompt long enough.", &sessionID); err != nil {
			t.Fatalf("ExtractOptions returned error: %v", err)
		}
	}
	if repo.sessions[sessionID] != 2 {
		t.Fatalf("EnsureSession called %d times, want 2", repo.sessions[sessionID])
	}
	if len(repo.sessions) != 1 {
		t.Fatalf("sessions = %v, want single id", repo.sessions)
	}
}

func TestEnhancePromptPersistsUserOptionsAndBrief(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	svc := newService(repo, textgen.NewStaticGenerator())
	runID, _ := repo.CreateRun(context.Background(), "Original prompt.", nil)

	seconds := 60
	enhanced, err := svc.EnhancePrompt(context.Background(), runID, "Original prompt.", domain.PromptOptions{DurationSeconds: &seconds}, nil)
	if err != nil {
		t.Fatalf("EnhancePrompt returned error: %v", err)
	}
	if !strings.Contains(enhanced, "Original prompt.") {
		t.Fatalf("enhanced = %q", enhanced)
	}
	run := repo.runs[runID]
	if run.status != domain.RunStatusEnhanced {
		t.Fatalf("status = %q, want enhanced", run.status)
	}
	if run.currentPrompt != enhanced {
		t.Fatalf("currentPrompt = %q", run.currentPrompt)
	}
	if run.optionSource != domain.OptionSourceUser {
		t.Fatalf("option source = %q, want user", run.optionSource)
	}
	if len(repo.events) != 1 || repo.events[0] != "enhance_prompt" {
		t.Fatalf("events = %v", repo.events)
	}
}

func TestGenerateScriptStoresScriptAndKeepsInputPrompt(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	svc := newService(repo, textgen.NewStaticGenerator())
	runID, _ := repo.CreateRun(context.Background(), "Kids hygiene video.", nil)

	script, err := svc.GenerateScript(context.Background(), runID, "Kids hygiene video.", nil, nil)
	if err != nil {
		t.Fatalf("GenerateScript returned error: %v", err)
	}
	if !strings.Contains(script, "Scene") {
		t.Fatalf("script = %q", script)
	}
	run := repo.runs[runID]
	if run.status != domain.RunStatusScriptGenerated {
		t.Fatalf("status = %q", run.status)
	}
	if run.currentPrompt != "Kids hygiene video." {
		t.Fatalf("currentPrompt = %q, want the input prompt, not the script", run.currentPrompt)
	}
	if len(run.scripts) != 1 || run.scripts[0] != script {
		t.Fatalf("scripts = %v", run.scripts)
	}
}

func TestProviderFailureLeavesRunUntouched(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	svc := newService(repo, failingGenerator{})
	runID, _ := repo.CreateRun(context.Background(), "A prompt.", nil)

	if _, err := svc.GenerateScript(context.Background(), runID, "A prompt.", nil, nil); err == nil {
		t.Fatal("expected provider error")
	}
	run := repo.runs[runID]
	if run.status != domain.RunStatusCreated {
		t.Fatalf("status = %q, want created", run.status)
	}
	if len(run.scripts) != 0 {
		t.Fatalf("scripts = %v, want none", run.scripts)
	}
	if len(repo.events) != 0 {
		t.Fatalf("events = %v, want none", repo.events)
	}
	if len(repo.errs) != 0 {
		t.Fatal("service must not write error logs itself")
	}
}

func TestExtractFailureLeavesRunCreated(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	svc := newService(repo, failingGenerator{})

	_, _, err := svc.ExtractOptions(context.Background(), "A prompt long enough.", nil)
	if err == nil {
		t.Fatal("expected provider error")
	}
	appErr, ok := domain.AsAppError(err)
	if !ok || appErr.Code != domain.CodeProviderError {
		t.Fatalf("err = %v", err)
	}
	// The run row exists but no option write happened.
	if len(repo.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(repo.runs))
	}
	for _, run := range repo.runs {
		if run.status != domain.RunStatusCreated {
			t.Fatalf("status = %q, want created", run.status)
		}
	}
	if len(repo.events) != 0 {
		t.Fatalf("events = %v, want none", repo.events)
	}
}

func TestEventLogFailureDoesNotAbortStep(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	repo.failEvents = true
	svc := newService(repo, textgen.NewStaticGenerator())
	runID, _ := repo.CreateRun(context.Background(), "A prompt.", nil)

	script, err := svc.GenerateScript(context.Background(), runID, "A prompt.", nil, nil)
	if err != nil {
		t.Fatalf("GenerateScript returned error: %v", err)
	}
	if script == "" {
		t.Fatal("expected script text")
	}
	if repo.runs[runID].status != domain.RunStatusScriptGenerated {
		t.Fatalf("status = %q", repo.runs[runID].status)
	}
}
