package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sellercentre/catalog/internal/attribute/domain"
	"github.com/sellercentre/catalog/internal/attribute/repository"
	"github.com/sellercentre/catalog/pkg/db"
	"github.com/sellercentre/catalog/pkg/idcodec"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Definition{}, &domain.Value{}))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Codec: idcodec.New(0xfeed),
		Repo:  repository.Provide(),
	})
	return svc, dbConn
}

func plainColorInput() domain.AttributeInput {
	return domain.AttributeInput{
		Kind:      domain.KindPlain,
		Name:      "color",
		ShortName: "col",
		IsFaceted: true,
		ValueType: domain.ColorType,
		Values: []domain.ValueInput{
			{Kind: domain.ColorType, Name: "black", Hex: "#000000"},
		},
	}
}

func TestCreateDefinitionDedupByName(t *testing.T) {
	svc, dbConn := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateDefinition(ctx, plainColorInput())
	require.NoError(t, err)

	second, err := svc.CreateDefinition(ctx, plainColorInput())
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, dbConn.Raw(`SELECT COUNT(*) FROM attribute_definitions`).Scan(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestMaterializeValueDedupByNaturalKey(t *testing.T) {
	svc, dbConn := newTestService(t)
	ctx := context.Background()

	var first, second *domain.Value
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		var err error
		first, err = svc.MaterializeValue(ctx, tx, domain.ColorValue{Name: "black", Hex: "#000000"})
		if err != nil {
			return err
		}
		// Same hex dedups even when the display name differs.
		second, err = svc.MaterializeValue(ctx, tx, domain.ColorValue{Name: "ink", Hex: "#000000"})
		return err
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, dbConn.Raw(`SELECT COUNT(*) FROM attribute_values`).Scan(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestBuildAttributeRejectsMixedKinds(t *testing.T) {
	svc, dbConn := newTestService(t)

	input := plainColorInput()
	input.Values = append(input.Values, domain.ValueInput{Kind: domain.StringType, Value: "black"})

	err := dbConn.Transaction(func(tx *gorm.DB) error {
		_, err := svc.BuildAttribute(context.Background(), tx, input)
		return err
	})
	require.ErrorIs(t, err, domain.ErrTypeMismatch)
}

func TestBuildCompositeAttribute(t *testing.T) {
	svc, dbConn := newTestService(t)

	ten := 10.0
	var attr domain.Attribute
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		var err error
		attr, err = svc.BuildAttribute(context.Background(), tx, domain.AttributeInput{
			Kind:      domain.KindComposite,
			Name:      "dimensions",
			ShortName: "dims",
			SubAttributes: []domain.SubAttributeInput{{
				Name:      "width",
				ShortName: "w",
				ValueType: domain.NumericType,
				Values:    []domain.ValueInput{{Kind: domain.NumericType, NumericValue: &ten, LocalizedValue: "10mm", Unit: "mm"}},
			}},
		})
		return err
	})
	require.NoError(t, err)

	composite, ok := attr.(*domain.CompositeAttribute)
	require.True(t, ok)
	require.NotNil(t, composite.Sub("width"))
	require.Len(t, composite.Sub("width").AvailableValues, 1)
}

func TestGetDefinitionUnknownToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetDefinition(context.Background(), "zz")
	require.ErrorIs(t, err, domain.ErrInvalidID)
}
