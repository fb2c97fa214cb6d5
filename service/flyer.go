package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"flyer/models"
	"flyer/storage"
	"flyer/templates"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MinInputLength is the shortest user description worth sending to the generator.
const MinInputLength = 5

// FlyerService generates flyer copy and keeps the user's edits.
type FlyerService struct {
	generator Generator
	templates *templates.Store
	sessions  *storage.Store
	now       func() time.Time

	strictSlots bool
}

// Option configures a FlyerService.
type Option func(*FlyerService)

// WithStrictSlots maps slots with DefaultSlotRules only and ignores the
// category rules of the template store.
func WithStrictSlots(strict bool) Option {
	return func(s *FlyerService) {
		s.strictSlots = strict
	}
}

func NewFlyerService(gen Generator, tmpl *templates.Store, sessions *storage.Store, opts ...Option) *FlyerService {
	s := &FlyerService{
		generator: gen,
		templates: tmpl,
		sessions:  sessions,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlyerService) Templates() []models.Template {
	return s.templates.All()
}

func (s *FlyerService) TemplatesByCategory(category string) []models.Template {
	if category == "" {
		return s.templates.All()
	}
	return s.templates.ByCategory(category)
}

// GenerateContent runs generation and structuring without a template.
func (s *FlyerService) GenerateContent(ctx context.Context, userInput, flyerType string) (models.GeneratedContent, error) {
	if err := validateInput(userInput); err != nil {
		return models.GeneratedContent{}, err
	}
	flyerType = normalizeType(flyerType)

	content, err := s.generate(ctx, userInput, flyerType)
	if err != nil {
		return models.GeneratedContent{}, err
	}
	return models.GeneratedContent{
		OriginalInput:   userInput,
		EnhancedContent: content,
		FlyerType:       flyerType,
	}, nil
}

// BuildFlyer validates the request, generates copy and pairs it with the template.
func (s *FlyerService) BuildFlyer(ctx context.Context, userInput, templateID, flyerType string) (models.Flyer, error) {
	if err := validateInput(userInput); err != nil {
		return models.Flyer{}, err
	}
	if strings.TrimSpace(templateID) == "" {
		return models.Flyer{}, errors.Wrap(ErrInvalidInput, "template id is required")
	}
	tmpl, ok := s.templates.Find(templateID)
	if !ok {
		return models.Flyer{}, errors.Wrapf(ErrTemplateNotFound, "id %s", templateID)
	}
	flyerType = normalizeType(flyerType)

	content, err := s.generate(ctx, userInput, flyerType)
	if err != nil {
		return models.Flyer{}, err
	}

	return models.Flyer{
		ID:            uuid.New().String(),
		Template:      tmpl,
		Content:       content,
		OriginalInput: userInput,
		FlyerType:     flyerType,
		CreatedAt:     s.now().UTC(),
	}, nil
}

// CreateFlyer builds a flyer and opens an editing session for it.
func (s *FlyerService) CreateFlyer(ctx context.Context, userInput, templateID, flyerType string) (models.FlyerView, error) {
	flyer, err := s.BuildFlyer(ctx, userInput, templateID, flyerType)
	if err != nil {
		return models.FlyerView{}, err
	}
	session, err := s.sessions.Save(flyer)
	if err != nil {
		return models.FlyerView{}, errors.Wrap(err, "save flyer")
	}
	slog.Info("flyer_created", "id", flyer.ID, "template", flyer.Template.ID, "type", flyer.FlyerType)
	return s.View(session), nil
}

func (s *FlyerService) Flyer(id string) (models.FlyerView, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return models.FlyerView{}, err
	}
	return s.View(session), nil
}

func (s *FlyerService) Flyers() []models.FlyerView {
	sessions := s.sessions.List()
	out := make([]models.FlyerView, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, s.View(session))
	}
	return out
}

// SlotEdit is a partial update of one slot. Nil fields are left unchanged.
type SlotEdit struct {
	Text     *string
	FontSize *int
}

func (s *FlyerService) EditSlot(id, slot string, edit SlotEdit) (models.FlyerView, error) {
	if edit.Text == nil && edit.FontSize == nil {
		return models.FlyerView{}, errors.Wrap(ErrInvalidInput, "text or fontSize is required")
	}

	var (
		session models.FlyerSession
		err     error
	)
	// Font size goes first: it is the only part that can fail on its own.
	if edit.FontSize != nil {
		if session, err = s.sessions.SetFontSize(id, slot, *edit.FontSize); err != nil {
			return models.FlyerView{}, err
		}
	}
	if edit.Text != nil {
		if session, err = s.sessions.SetText(id, slot, *edit.Text); err != nil {
			return models.FlyerView{}, err
		}
	}
	return s.View(session), nil
}

func (s *FlyerService) ResetSlot(id, slot string) (models.FlyerView, error) {
	session, err := s.sessions.Reset(id, slot)
	if err != nil {
		return models.FlyerView{}, err
	}
	return s.View(session), nil
}

func (s *FlyerService) DeleteFlyer(id string) error {
	return s.sessions.Delete(id)
}

// Export renders the effective slot text of a flyer as plain text.
func (s *FlyerService) Export(id string) (string, error) {
	view, err := s.Flyer(id)
	if err != nil {
		return "", err
	}
	return ExportText(view.Flyer.Template.Layout.Elements, view.Slots), nil
}

// View maps the flyer content onto its template and applies the session's
// overrides on top. The stored content is never modified.
func (s *FlyerService) View(session models.FlyerSession) models.FlyerView {
	tmpl := session.Flyer.Template
	rules := DefaultSlotRules()
	extra := s.templates.SlotRules(tmpl.Category)
	extended := !s.strictSlots && len(extra) > 0
	if extended {
		rules = RulesFor(extra)
	}
	slots := MapSlotsWith(session.Flyer.Content, tmpl.Layout.Elements, rules)

	fontSizes := make(map[string]int, len(tmpl.Layout.Elements))
	edited := []string{}
	for _, el := range tmpl.Layout.Elements {
		fontSizes[el.ID] = el.Style.FontSize
		if size, ok := session.FontSizes[el.ID]; ok {
			fontSizes[el.ID] = size
		}
		text, hasText := session.Edits[el.ID]
		if hasText {
			slots[el.ID] = text
		}
		if _, hasSize := session.FontSizes[el.ID]; hasText || hasSize {
			edited = append(edited, el.ID)
		}
	}
	sort.Strings(edited)

	return models.FlyerView{
		Flyer:     session.Flyer,
		Slots:     slots,
		FontSizes: fontSizes,
		Edited:    edited,
		UpdatedAt: session.UpdatedAt,

		ExtendedSlots: extended,
	}
}

func (s *FlyerService) generate(ctx context.Context, userInput, flyerType string) (models.StructuredContent, error) {
	raw, err := s.generator.Generate(ctx, PromptFor(userInput, flyerType))
	if err != nil {
		if !errors.Is(err, ErrUpstreamGenerationFailed) {
			err = errors.Wrapf(ErrUpstreamGenerationFailed, "%v", err)
		}
		return models.StructuredContent{}, err
	}

	content := Structure(raw, flyerType)
	slog.Debug("content_structured",
		"type", flyerType,
		"headline", content.Headline != "",
		"sections", len(content.Sections),
	)
	if content.CallToAction == "" {
		slog.Info("cta_missing", "type", flyerType, "sections", len(content.Sections))
	}
	return content, nil
}

func validateInput(userInput string) error {
	trimmed := strings.TrimSpace(userInput)
	if trimmed == "" {
		return errors.Wrap(ErrInvalidInput, "user input is required")
	}
	if utf8.RuneCountInString(trimmed) < MinInputLength {
		return errors.Wrapf(ErrInvalidInput, "user input must be at least %d characters", MinInputLength)
	}
	return nil
}

func normalizeType(flyerType string) string {
	flyerType = strings.TrimSpace(flyerType)
	if flyerType == "" {
		return DefaultFlyerType
	}
	return flyerType
}
