package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sellercentre/catalog/internal/attribute/domain"
	"github.com/sellercentre/catalog/pkg/idcodec"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Codec *idcodec.Codec
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	codec *idcodec.Codec
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("attribute.service"),
		genID: p.GenID,
		codec: p.Codec,
		repo:  p.Repo,
	}
}

func (s *Service) CreateDefinition(ctx context.Context, req domain.AttributeInput) (*domain.DefinitionResponse, error) {
	var def *domain.Definition
	err := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.EnsureDefinition(ctx, tx, req)
		if err != nil {
			return err
		}
		def = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.toResponse(def)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) GetDefinition(ctx context.Context, id string) (*domain.DefinitionResponse, error) {
	defID, err := s.codec.Decode(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	def, err := s.repo.FindDefinitionByID(ctx, s.db, defID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, domain.ErrNotFound
	}

	return s.toResponse(def)
}

func (s *Service) ListDefinitions(ctx context.Context) ([]domain.DefinitionResponse, error) {
	items, err := s.repo.FindAllDefinitions(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.DefinitionResponse, 0, len(items))
	for i := range items {
		r, err := s.toResponse(&items[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *r)
	}
	return resp, nil
}

// EnsureDefinition converges create-inline and reference-by-name on the same
// definition entity: an existing definition with the requested name wins.
func (s *Service) EnsureDefinition(ctx context.Context, tx *gorm.DB, req domain.AttributeInput) (*domain.Definition, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	existing, err := s.repo.FindDefinitionByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	attr, err := s.BuildAttribute(ctx, tx, req)
	if err != nil {
		return nil, err
	}

	doc, err := domain.MarshalAttribute(attr)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	def := &domain.Definition{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		ShortName: strings.TrimSpace(req.ShortName),
		Kind:      attr.Kind(),
		IsFaceted: req.IsFaceted,
		Document:  datatypes.JSON(doc),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if plain, ok := attr.(*domain.PlainAttribute); ok {
		def.ValueType = plain.ValueType
	}

	if err := s.repo.CreateDefinition(ctx, tx, def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *Service) MaterializeValue(ctx context.Context, tx *gorm.DB, v domain.AttributeValue) (*domain.Value, error) {
	key := domain.NaturalKey(v)

	existing, err := s.repo.FindValueByNaturalKey(ctx, tx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	payload, err := domain.MarshalValue(v)
	if err != nil {
		return nil, err
	}

	value := &domain.Value{
		ID:         s.genID.Generate().Int64(),
		ValueType:  v.Kind(),
		NaturalKey: key,
		Payload:    datatypes.JSON(payload),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.CreateValue(ctx, tx, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Service) BuildAttribute(ctx context.Context, tx *gorm.DB, req domain.AttributeInput) (domain.Attribute, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	switch req.Kind {
	case domain.KindPlain:
		values, err := s.materializeAll(ctx, tx, req.ValueType, req.Values)
		if err != nil {
			return nil, err
		}
		attr := &domain.PlainAttribute{
			AttributeName:   name,
			ShortName:       strings.TrimSpace(req.ShortName),
			IsFaceted:       req.IsFaceted,
			ValueType:       req.ValueType,
			AvailableValues: values,
		}
		if err := attr.Validate(); err != nil {
			return nil, err
		}
		return attr, nil

	case domain.KindComposite:
		subs := make([]*domain.PlainAttribute, 0, len(req.SubAttributes))
		for _, subReq := range req.SubAttributes {
			values, err := s.materializeAll(ctx, tx, subReq.ValueType, subReq.Values)
			if err != nil {
				return nil, err
			}
			sub := &domain.PlainAttribute{
				AttributeName:   strings.TrimSpace(subReq.Name),
				ShortName:       strings.TrimSpace(subReq.ShortName),
				IsFaceted:       subReq.IsFaceted,
				ValueType:       subReq.ValueType,
				AvailableValues: values,
			}
			if sub.AttributeName == "" {
				return nil, domain.ErrInvalidName
			}
			if err := sub.Validate(); err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		return &domain.CompositeAttribute{
			AttributeName: name,
			ShortName:     strings.TrimSpace(req.ShortName),
			IsFaceted:     req.IsFaceted,
			SubAttributes: subs,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, req.Kind)
	}
}

func (s *Service) materializeAll(ctx context.Context, tx *gorm.DB, expected domain.ValueKind, inputs []domain.ValueInput) (domain.ValueList, error) {
	values := make(domain.ValueList, 0, len(inputs))
	for _, in := range inputs {
		v, err := in.ToValue()
		if err != nil {
			return nil, err
		}
		if v.Kind() != expected {
			return nil, &domain.TypeMismatchError{Expected: expected, Actual: v.Kind()}
		}
		if _, err := s.MaterializeValue(ctx, tx, v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (s *Service) toResponse(def *domain.Definition) (*domain.DefinitionResponse, error) {
	// The stored document was validated at write time.
	if _, err := domain.UnmarshalAttribute(def.Document); err != nil {
		return nil, err
	}
	return &domain.DefinitionResponse{
		ID:        s.codec.Encode(def.ID),
		Name:      def.Name,
		ShortName: def.ShortName,
		Kind:      def.Kind,
		ValueType: def.ValueType,
		IsFaceted: def.IsFaceted,
		Document:  json.RawMessage(def.Document),
		CreatedAt: def.CreatedAt,
		UpdatedAt: def.UpdatedAt,
	}, nil
}
