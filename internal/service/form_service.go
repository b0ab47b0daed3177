package service

import (
	"errors"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"

	"gorm.io/gorm"
)

type FormService struct {
	FormRepo *repository.FormRepository
}

func NewFormService(formRepo *repository.FormRepository) *FormService {
	return &FormService{FormRepo: formRepo}
}

type FormFieldInput struct {
	Label    string              `json:"label" binding:"required"`
	Kind     model.FormFieldKind `json:"kind"`
	Required bool                `json:"required"`
	Options  []string            `json:"options"`
}

type FormInput struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Published   bool             `json:"published"`
	Fields      []FormFieldInput `json:"fields"`
}

func buildFields(inputs []FormFieldInput) []model.FormField {
	fields := make([]model.FormField, 0, len(inputs))
	for i, f := range inputs {
		kind := f.Kind
		if kind == "" {
			kind = model.FieldText
		}
		fields = append(fields, model.FormField{
			Label:    f.Label,
			Kind:     kind,
			Required: f.Required,
			Position: i,
			Options:  f.Options,
		})
	}
	return fields
}

func (s *FormService) Create(input FormInput, createdByID uint) (*model.Form, error) {
	form := &model.Form{
		Title:       input.Title,
		Description: input.Description,
		Published:   input.Published,
		CreatedByID: createdByID,
		Fields:      buildFields(input.Fields),
	}
	if err := s.FormRepo.Create(form); err != nil {
		return nil, err
	}
	return s.FormRepo.GetByID(form.ID)
}

func (s *FormService) Update(id uint, input FormInput) (*model.Form, error) {
	form, err := s.FormRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrFormNotFound
		}
		return nil, err
	}

	form.Title = input.Title
	form.Description = input.Description
	form.Published = input.Published
	form.Fields = nil
	if err := s.FormRepo.Update(form); err != nil {
		return nil, err
	}

	if err := s.FormRepo.ReplaceFields(form.ID, buildFields(input.Fields)); err != nil {
		return nil, err
	}

	return s.FormRepo.GetByID(form.ID)
}

func (s *FormService) GetByID(id uint) (*model.Form, error) {
	form, err := s.FormRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

func (s *FormService) List(publishedOnly bool) ([]model.Form, error) {
	return s.FormRepo.List(publishedOnly)
}

func (s *FormService) Delete(id uint) error {
	return s.FormRepo.Delete(id)
}

// Submit records a response to a published form. The only validation is
// required-field presence; answer shapes are the client's business.
func (s *FormService) Submit(formID, userID uint, answers map[uint]string) (*model.FormSubmission, error) {
	form, err := s.GetByID(formID)
	if err != nil {
		return nil, err
	}
	if !form.Published {
		return nil, util.ErrFormNotPublished
	}

	for _, f := range form.Fields {
		if f.Required && answers[f.ID] == "" {
			return nil, util.ErrMissingRequiredField
		}
	}

	sub := &model.FormSubmission{
		FormID:  formID,
		UserID:  userID,
		Answers: answers,
	}
	if err := s.FormRepo.CreateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *FormService) ListSubmissions(formID uint) ([]model.FormSubmission, error) {
	if _, err := s.GetByID(formID); err != nil {
		return nil, err
	}
	return s.FormRepo.ListSubmissions(formID)
}
