package handler

import (
	"net/http"
	"testing"
	"time"

	financeapp "github.com/financetracking/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	env := newTestEnv(t)
	owner := env.provisionUser(t, "alice", "alice@example.com")
	token := env.token(t, owner)
	groupID := createGroup(t, env, token, "Household")
	base := "/api/v1/groups/" + groupID.String() + "/categories"

	rec := env.do(t, http.MethodPost, base, token, gin.H{"name": "Groceries", "color_hex": "#ff8800"})
	requireStatus(t, rec, http.StatusCreated)
	var created financeapp.CategoryDTO
	decodeData(t, rec, &created)
	assert.Equal(t, "Groceries", created.Name)
	assert.Equal(t, "#FF8800", created.ColorHex)

	rec = env.do(t, http.MethodGet, base, token, nil)
	requireStatus(t, rec, http.StatusOK)
	var list []financeapp.CategoryDTO
	decodeData(t, rec, &list)
	require.Len(t, list, 1)

	rec = env.do(t, http.MethodPut, base+"/"+created.ID.String(), token,
		gin.H{"name": "Food", "color_hex": "#00FF00"})
	requireStatus(t, rec, http.StatusOK)
	var updated financeapp.CategoryDTO
	decodeData(t, rec, &updated)
	assert.Equal(t, "Food", updated.Name)

	rec = env.do(t, http.MethodDelete, base+"/"+created.ID.String(), token, nil)
	requireStatus(t, rec, http.StatusNoContent)

	rec = env.do(t, http.MethodGet, base+"/"+created.ID.String(), token, nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestCategoryValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, env.provisionUser(t, "alice", "alice@example.com"))
	groupID := createGroup(t, env, token, "Household")
	base := "/api/v1/groups/" + groupID.String() + "/categories"

	// Malformed color
	rec := env.do(t, http.MethodPost, base, token, gin.H{"name": "Groceries", "color_hex": "orange"})
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "ERR_VALIDATION", decodeError(t, rec).Code)

	// Missing name fails binding
	rec = env.do(t, http.MethodPost, base, token, gin.H{"color_hex": "#FF8800"})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestFinanceEndpointsRequireMembership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.provisionUser(t, "alice", "alice@example.com")
	outsider := env.provisionUser(t, "bob", "bob@example.com")
	groupID := createGroup(t, env, env.token(t, owner), "Household")

	rec := env.do(t, http.MethodGet,
		"/api/v1/groups/"+groupID.String()+"/categories", env.token(t, outsider), nil)
	requireStatus(t, rec, http.StatusForbidden)

	rec = env.do(t, http.MethodPost,
		"/api/v1/groups/"+groupID.String()+"/receipts", env.token(t, outsider),
		gin.H{"purchased_at": time.Now(), "items": []gin.H{{"name": "x", "unit_price": "1", "quantity": 1}}})
	requireStatus(t, rec, http.StatusForbidden)
}

func TestSellerCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, env.provisionUser(t, "alice", "alice@example.com"))
	groupID := createGroup(t, env, token, "Household")
	base := "/api/v1/groups/" + groupID.String() + "/sellers"

	rec := env.do(t, http.MethodPost, base, token, gin.H{"name": "Corner Market", "location": "Main St"})
	requireStatus(t, rec, http.StatusCreated)
	var created financeapp.SellerDTO
	decodeData(t, rec, &created)
	assert.Equal(t, "Corner Market", created.Name)
	assert.Equal(t, "Main St", created.Location)

	rec = env.do(t, http.MethodPut, base+"/"+created.ID.String(), token, gin.H{"name": "Corner Market II"})
	requireStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, base+"/"+created.ID.String(), token, nil)
	requireStatus(t, rec, http.StatusOK)
	var got financeapp.SellerDTO
	decodeData(t, rec, &got)
	assert.Equal(t, "Corner Market II", got.Name)
}

func TestBudgetGoalCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, env.provisionUser(t, "alice", "alice@example.com"))
	groupID := createGroup(t, env, token, "Household")
	base := "/api/v1/groups/" + groupID.String() + "/budget-goals"

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rec := env.do(t, http.MethodPost, base, token, gin.H{
		"target_amount": "500.00", "start_date": start, "end_date": end,
	})
	requireStatus(t, rec, http.StatusCreated)
	var created financeapp.BudgetGoalDTO
	decodeData(t, rec, &created)
	assert.True(t, created.TargetAmount.Equal(decimal.RequireFromString("500.00")))

	// End before start is rejected
	rec = env.do(t, http.MethodPost, base, token, gin.H{
		"target_amount": "500.00", "start_date": end, "end_date": start,
	})
	requireStatus(t, rec, http.StatusBadRequest)

	rec = env.do(t, http.MethodDelete, base+"/"+created.ID.String(), token, nil)
	requireStatus(t, rec, http.StatusNoContent)
}

func TestReceiptLifecycle(t *testing.T) {
	env := newTestEnv(t)
	owner := env.provisionUser(t, "alice", "alice@example.com")
	token := env.token(t, owner)
	groupID := createGroup(t, env, token, "Household")
	base := "/api/v1/groups/" + groupID.String() + "/receipts"

	rec := env.do(t, http.MethodPost,
		"/api/v1/groups/"+groupID.String()+"/sellers", token, gin.H{"name": "Corner Market"})
	requireStatus(t, rec, http.StatusCreated)
	var seller financeapp.SellerDTO
	decodeData(t, rec, &seller)

	purchasedAt := time.Date(2025, 11, 2, 15, 4, 0, 0, time.UTC)
	rec = env.do(t, http.MethodPost, base, token, gin.H{
		"seller_id":    seller.ID,
		"purchased_at": purchasedAt,
		"items": []gin.H{
			{"name": "Milk", "categories": []string{"Dairy"}, "unit_price": "1.50", "quantity": 2},
			{"name": "Bread", "unit_price": "2.25", "quantity": 1},
		},
	})
	requireStatus(t, rec, http.StatusCreated)
	var created financeapp.ReceiptDTO
	decodeData(t, rec, &created)
	assert.Equal(t, owner, created.CreatedByUserID)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "Milk", created.Items[0].Name)
	assert.NotEqual(t, uuid.Nil, created.Items[0].ProductID)
	assert.Equal(t, []string{"Dairy"}, created.Items[0].Categories)
	assert.True(t, created.Total.Equal(decimal.RequireFromString("5.25")),
		"expected total 5.25, got %s", created.Total)

	// Replacing the items recomputes the total
	rec = env.do(t, http.MethodPut, base+"/"+created.ID.String(), token, gin.H{
		"purchased_at": purchasedAt,
		"items":        []gin.H{{"name": "Milk", "unit_price": "1.50", "quantity": 1}},
	})
	requireStatus(t, rec, http.StatusOK)
	var updated financeapp.ReceiptDTO
	decodeData(t, rec, &updated)
	require.Len(t, updated.Items, 1)
	assert.Nil(t, updated.SellerID)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("1.50")))

	rec = env.do(t, http.MethodDelete, base+"/"+created.ID.String(), token, nil)
	requireStatus(t, rec, http.StatusNoContent)

	rec = env.do(t, http.MethodGet, base+"/"+created.ID.String(), token, nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestReceiptRejectsForeignSeller(t *testing.T) {
	env := newTestEnv(t)
	owner := env.provisionUser(t, "alice", "alice@example.com")
	token := env.token(t, owner)
	groupID := createGroup(t, env, token, "Household")
	otherGroupID := createGroup(t, env, token, "Vacation")

	rec := env.do(t, http.MethodPost,
		"/api/v1/groups/"+otherGroupID.String()+"/sellers", token, gin.H{"name": "Elsewhere"})
	requireStatus(t, rec, http.StatusCreated)
	var foreign financeapp.SellerDTO
	decodeData(t, rec, &foreign)

	body := gin.H{
		"seller_id":    foreign.ID,
		"purchased_at": time.Now().UTC(),
		"items":        []gin.H{{"name": "Milk", "unit_price": "1.50", "quantity": 1}},
	}
	rec = env.do(t, http.MethodPost, "/api/v1/groups/"+groupID.String()+"/receipts", token, body)
	requireStatus(t, rec, http.StatusBadRequest)

	// Same for a seller that does not exist at all
	body["seller_id"] = uuid.New()
	rec = env.do(t, http.MethodPost, "/api/v1/groups/"+groupID.String()+"/receipts", token, body)
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestReceiptValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, env.provisionUser(t, "alice", "alice@example.com"))
	groupID := createGroup(t, env, token, "Household")
	base := "/api/v1/groups/" + groupID.String() + "/receipts"

	// Receipts need at least one item
	rec := env.do(t, http.MethodPost, base, token, gin.H{
		"purchased_at": time.Now().UTC(), "items": []gin.H{},
	})
	requireStatus(t, rec, http.StatusBadRequest)

	// Quantities must be positive
	rec = env.do(t, http.MethodPost, base, token, gin.H{
		"purchased_at": time.Now().UTC(),
		"items":        []gin.H{{"name": "Milk", "unit_price": "1.50", "quantity": 0}},
	})
	requireStatus(t, rec, http.StatusBadRequest)
}

// addMember invites and accepts, returning the new member's ID
func addMember(t *testing.T, env *testEnv, ownerToken string, groupID uuid.UUID, username, email string) uuid.UUID {
	t.Helper()
	memberID := env.provisionUser(t, username, email)
	inv := invite(t, env, ownerToken, groupID, email)
	rec := env.do(t, http.MethodPost, "/api/v1/invitations/"+inv.ID.String()+"/accept",
		env.token(t, memberID), nil)
	requireStatus(t, rec, http.StatusNoContent)
	return memberID
}

func TestProductCatalogBuiltFromReceipts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.provisionUser(t, "alice", "alice@example.com")
	token := env.token(t, owner)
	groupID := createGroup(t, env, token, "Household")
	receipts := "/api/v1/groups/" + groupID.String() + "/receipts"
	products := "/api/v1/groups/" + groupID.String() + "/products"

	rec := env.do(t, http.MethodPost, receipts, token, gin.H{
		"purchased_at": time.Now().UTC(),
		"items": []gin.H{
			{"name": "Milk", "categories": []string{"Dairy"}, "unit_price": "1.50", "quantity": 2},
			{"name": "Bread", "unit_price": "2.25", "quantity": 1},
		},
	})
	requireStatus(t, rec, http.StatusCreated)

	rec = env.do(t, http.MethodGet, products, token, nil)
	requireStatus(t, rec, http.StatusOK)
	var list []financeapp.ProductDTO
	decodeData(t, rec, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Bread", list[0].Name)
	assert.Equal(t, "Milk", list[1].Name)
	assert.Equal(t, []string{"Dairy"}, list[1].Categories)

	// The implicit category landed in the group's category list with
	// the default color
	rec = env.do(t, http.MethodGet, "/api/v1/groups/"+groupID.String()+"/categories", token, nil)
	requireStatus(t, rec, http.StatusOK)
	var categories []financeapp.CategoryDTO
	decodeData(t, rec, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, "Dairy", categories[0].Name)
	assert.Equal(t, "#000000", categories[0].ColorHex)

	// A second receipt naming the same product reuses it
	rec = env.do(t, http.MethodPost, receipts, token, gin.H{
		"purchased_at": time.Now().UTC(),
		"items": []gin.H{
			{"name": "Milk", "categories": []string{"dairy"}, "unit_price": "1.50", "quantity": 1},
		},
	})
	requireStatus(t, rec, http.StatusCreated)

	rec = env.do(t, http.MethodGet, products, token, nil)
	requireStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &list)
	assert.Len(t, list, 2)
}

func TestProductUpdateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	owner := env.provisionUser(t, "alice", "alice@example.com")
	ownerToken := env.token(t, owner)
	groupID := createGroup(t, env, ownerToken, "Household")
	member := addMember(t, env, ownerToken, groupID, "bob", "bob@example.com")
	memberToken := env.token(t, member)

	rec := env.do(t, http.MethodPost, "/api/v1/groups/"+groupID.String()+"/receipts", ownerToken, gin.H{
		"purchased_at": time.Now().UTC(),
		"items":        []gin.H{{"name": "Milk", "unit_price": "1.50", "quantity": 1}},
	})
	requireStatus(t, rec, http.StatusCreated)

	products := "/api/v1/groups/" + groupID.String() + "/products"
	rec = env.do(t, http.MethodGet, products, memberToken, nil)
	requireStatus(t, rec, http.StatusOK)
	var list []financeapp.ProductDTO
	decodeData(t, rec, &list)
	require.Len(t, list, 1)
	productURL := products + "/" + list[0].ID.String()

	// Members can read but not patch or delete
	rec = env.do(t, http.MethodPatch, productURL, memberToken, gin.H{"name": "Whole Milk"})
	requireStatus(t, rec, http.StatusForbidden)
	rec = env.do(t, http.MethodDelete, productURL, memberToken, nil)
	requireStatus(t, rec, http.StatusForbidden)

	rec = env.do(t, http.MethodPatch, productURL, ownerToken, gin.H{
		"name": "Whole Milk", "description": "1L bottle",
	})
	requireStatus(t, rec, http.StatusOK)
	var updated financeapp.ProductDTO
	decodeData(t, rec, &updated)
	assert.Equal(t, "Whole Milk", updated.Name)
	assert.Equal(t, "1L bottle", updated.Description)
}

func TestProductDeleteRejectsReferencedProduct(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, env.provisionUser(t, "alice", "alice@example.com"))
	groupID := createGroup(t, env, token, "Household")

	rec := env.do(t, http.MethodPost, "/api/v1/groups/"+groupID.String()+"/receipts", token, gin.H{
		"purchased_at": time.Now().UTC(),
		"items":        []gin.H{{"name": "Milk", "unit_price": "1.50", "quantity": 1}},
	})
	requireStatus(t, rec, http.StatusCreated)
	var receipt financeapp.ReceiptDTO
	decodeData(t, rec, &receipt)
	productID := receipt.Items[0].ProductID

	productURL := "/api/v1/groups/" + groupID.String() + "/products/" + productID.String()
	rec = env.do(t, http.MethodDelete, productURL, token, nil)
	requireStatus(t, rec, http.StatusBadRequest)

	// Deleting the receipt removes the orphaned product with it
	rec = env.do(t, http.MethodDelete,
		"/api/v1/groups/"+groupID.String()+"/receipts/"+receipt.ID.String(), token, nil)
	requireStatus(t, rec, http.StatusNoContent)

	rec = env.do(t, http.MethodGet, productURL, token, nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestReceiptItemCategoryLimit(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, env.provisionUser(t, "alice", "alice@example.com"))
	groupID := createGroup(t, env, token, "Household")

	rec := env.do(t, http.MethodPost, "/api/v1/groups/"+groupID.String()+"/receipts", token, gin.H{
		"purchased_at": time.Now().UTC(),
		"items": []gin.H{{
			"name":       "Milk",
			"categories": []string{"a", "b", "c", "d", "e", "f"},
			"unit_price": "1.50",
			"quantity":   1,
		}},
	})
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "ERR_VALIDATION", decodeError(t, rec).Code)
}
