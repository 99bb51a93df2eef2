package catalog_test

import (
	"errors"
	"testing"
	"time"

	"go-pos-console/internal/catalog"
	"go-pos-console/internal/model"
	"go-pos-console/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string   `json:"name"`
	Code  *string  `json:"code"`
	Price float64  `json:"price"`
	Tags  []string `json:"-"`
}

func byName(i item) any { return i.Name }

func TestFilter_BlankTermReturnsInput(t *testing.T) {
	records := []item{{Name: "b"}, {Name: "a"}}

	assert.Equal(t, records, catalog.Filter(records, "", byName))
	assert.Equal(t, records, catalog.Filter(records, "   ", byName))
}

func TestFilter_CaseInsensitive(t *testing.T) {
	got := catalog.Filter([]item{{Name: "Mouse"}}, "MOUSE", byName)
	assert.Equal(t, []item{{Name: "Mouse"}}, got)
}

func TestFilter_TrimsTermAndKeepsOrder(t *testing.T) {
	records := []item{{Name: "Red Cup"}, {Name: "Plate"}, {Name: "blue cup"}}

	got := catalog.Filter(records, "  cup ", byName)

	assert.Equal(t, []item{{Name: "Red Cup"}, {Name: "blue cup"}}, got)
}

func TestFilter_NilFieldsAreEmpty(t *testing.T) {
	records := []item{{Name: "x", Code: nil}}
	got := catalog.Filter(records, "abc", func(i item) any { return i.Code }, func(i item) any { return nil })
	assert.Empty(t, got)
}

func TestFilter_NumbersCoerced(t *testing.T) {
	records := []item{{Name: "a", Price: 1250}, {Name: "b", Price: 99}}
	got := catalog.Filter(records, "125", func(i item) any { return i.Price })
	assert.Equal(t, []item{{Name: "a", Price: 1250}}, got)
}

func TestFilterByName(t *testing.T) {
	code := "SKU-77"
	records := []item{{Name: "Mouse", Code: &code}, {Name: "Pad"}}

	got, err := catalog.FilterByName(records, "sku-7", []string{"name", "code"})
	require.NoError(t, err)
	assert.Equal(t, []item{records[0]}, got)
}

func TestFilterByName_ValidationErrors(t *testing.T) {
	records := []item{{Name: "Mouse"}}

	_, err := catalog.FilterByName(records, "m", nil)
	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = catalog.FilterByName(records, "m", []string{"nope"})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Reason, "nope")

	_, err = catalog.FilterByName(records, "m", []string{"Tags"})
	assert.Error(t, err)
}

func TestFilterByName_EmbeddedID(t *testing.T) {
	id := uuid.MustParse("7b0c6f0e-0000-4000-8000-000000000abc")
	sales := []model.Sale{{BaseModel: model.BaseModel{ID: id}}, {BaseModel: model.BaseModel{ID: uuid.MustParse("11111111-1111-4111-8111-111111111111")}}}

	got, err := catalog.FilterByName(sales, "ABC", []string{"id"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
}

func TestProductFields_MatchCategory(t *testing.T) {
	products := []model.Product{
		{Name: "Cola", Category: &model.Category{Name: "Drinks"}},
		{Name: "Bread"},
	}

	got := catalog.Filter(products, "drink", catalog.ProductFields...)

	require.Len(t, got, 1)
	assert.Equal(t, "Cola", got[0].Name)
}

func TestUserFields_NilRole(t *testing.T) {
	users := []model.UserResponse{{Username: "ana"}, {Username: "luis", Role: &model.Role{Name: "Cashier"}}}
	got := catalog.Filter(users, "cash", catalog.UserFields...)
	require.Len(t, got, 1)
	assert.Equal(t, "luis", got[0].Username)
}

func TestFilterAudit(t *testing.T) {
	day := func(d int, h int) time.Time { return time.Date(2026, time.March, d, h, 0, 0, 0, time.UTC) }
	entries := []model.AuditEntry{
		{ID: 1, UserLabel: "Ana", Action: "product_created", Timestamp: day(1, 9)},
		{ID: 2, UserLabel: "Luis", Action: "sale_created", Timestamp: day(2, 23)},
		{ID: 3, UserLabel: "ana", Action: "offer_created", Timestamp: day(3, 0)},
		{ID: 4, UserLabel: "Ana", Action: "offer_deleted", Timestamp: day(4, 12)},
	}

	got := catalog.FilterAudit(entries, catalog.AuditQuery{UserLabel: "ANA", From: day(1, 18), To: day(3, 1)})

	ids := []uint{}
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []uint{1, 3}, ids)
	assert.Len(t, catalog.FilterAudit(entries, catalog.AuditQuery{}), 4)
}
