// internal/handlers/order_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/rahulbala1799/TT/internal/database"
	"github.com/rahulbala1799/TT/internal/services"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := database.OpenTestDB()
	suite.Require().NoError(err)
	suite.db = db

	statusService := services.NewStatusService(db)
	orderService := services.NewOrderService(db, statusService)
	handler := NewOrderHandler(orderService)

	suite.router = gin.New()
	orders := suite.router.Group("/orders")
	{
		orders.GET("", handler.ListOrders)
		orders.POST("", handler.CreateOrder)
		orders.GET("/:id", handler.GetOrder)
		orders.PUT("/:id", handler.UpdateOrder)
		orders.DELETE("/:id", handler.DeleteOrder)
		orders.PUT("/:id/status", handler.ReplaceStatuses)
	}
}

func (suite *OrderHandlerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrderHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *OrderHandlerTestSuite) createOrder() map[string]interface{} {
	w := suite.request("POST", "/orders", map[string]interface{}{
		"clientName":  "Aoife Byrne",
		"clientEmail": "aoife@example.com",
		"title":       "Event flyers",
		"priority":    "HIGH",
		"products": []map[string]interface{}{
			{"name": "Flyers", "quantity": 100, "price": 0.15},
		},
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	return suite.decode(w)
}

func (suite *OrderHandlerTestSuite) TestCreateOrder() {
	order := suite.createOrder()

	suite.Equal("PO000001", order["orderNumber"])
	suite.Equal("Event flyers", order["title"])
	suite.InDelta(15.0, order["totalPrice"].(float64), 1e-9)
	suite.InDelta(100, order["quantity"].(float64), 1e-9)

	customer := order["customer"].(map[string]interface{})
	suite.Equal("Aoife Byrne", customer["name"])

	statuses := order["statuses"].([]interface{})
	suite.Require().Len(statuses, 1)
	suite.Equal("ENQUIRY", statuses[0].(map[string]interface{})["status"])
}

func (suite *OrderHandlerTestSuite) TestCreateOrderRejectsMalformedJSON() {
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.decode(w), "error")
}

func (suite *OrderHandlerTestSuite) TestCreateOrderRejectsUnknownPriority() {
	w := suite.request("POST", "/orders", map[string]interface{}{
		"title":    "Bad priority",
		"priority": "WHENEVER",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *OrderHandlerTestSuite) TestListOrders() {
	suite.createOrder()

	w := suite.request("GET", "/orders", nil)
	suite.Equal(http.StatusOK, w.Code)

	var orders []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &orders))
	suite.Len(orders, 1)
}

func (suite *OrderHandlerTestSuite) TestGetOrderIncludesStatusLogs() {
	order := suite.createOrder()

	w := suite.request("GET", "/orders/"+order["id"].(string), nil)
	suite.Equal(http.StatusOK, w.Code)

	body := suite.decode(w)
	logs := body["statusLogs"].([]interface{})
	suite.Require().Len(logs, 1)
	entry := logs[0].(map[string]interface{})
	suite.Equal("ADDED", entry["action"])
	suite.Equal("ENQUIRY", entry["status"])
}

func (suite *OrderHandlerTestSuite) TestGetOrderNotFound() {
	w := suite.request("GET", "/orders/"+uuid.NewString(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Order not found", suite.decode(w)["error"])
}

func (suite *OrderHandlerTestSuite) TestGetOrderInvalidID() {
	w := suite.request("GET", "/orders/not-a-uuid", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *OrderHandlerTestSuite) TestUpdateOrderStatuses() {
	order := suite.createOrder()

	w := suite.request("PUT", "/orders/"+order["id"].(string), map[string]interface{}{
		"statusesToAdd":    []string{"IN_PRODUCTION"},
		"statusesToRemove": []string{"ENQUIRY"},
	})
	suite.Equal(http.StatusOK, w.Code)

	statuses := suite.decode(w)["statuses"].([]interface{})
	suite.Require().Len(statuses, 1)
	suite.Equal("IN_PRODUCTION", statuses[0].(map[string]interface{})["status"])
}

func (suite *OrderHandlerTestSuite) TestReplaceStatuses() {
	order := suite.createOrder()

	w := suite.request("PUT", "/orders/"+order["id"].(string)+"/status", map[string]interface{}{
		"statuses": []string{"QUOTE_SENT", "DESIGN_BRIEF"},
	})
	suite.Equal(http.StatusOK, w.Code)

	var statuses []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &statuses))
	suite.Len(statuses, 2)

	labels := map[string]bool{}
	for _, s := range statuses {
		suite.Equal(true, s["isActive"])
		labels[s["status"].(string)] = true
	}
	suite.True(labels["QUOTE_SENT"])
	suite.True(labels["DESIGN_BRIEF"])
}

func (suite *OrderHandlerTestSuite) TestListKeepsCollectionArraysWhenEmpty() {
	w := suite.request("POST", "/orders", map[string]interface{}{"title": "Bare enquiry"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	order := suite.decode(w)

	w = suite.request("PUT", "/orders/"+order["id"].(string), map[string]interface{}{
		"statusesToRemove": []string{"ENQUIRY"},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/orders", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var orders []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &orders))
	suite.Require().Len(orders, 1)

	// Both collections stay present as arrays even when emptied
	statuses, ok := orders[0]["statuses"].([]interface{})
	suite.Require().True(ok, "statuses must be an array")
	suite.Empty(statuses)

	items, ok := orders[0]["orderItems"].([]interface{})
	suite.Require().True(ok, "orderItems must be an array")
	suite.Empty(items)

	// The unloaded user relation is not serialized at all
	suite.NotContains(orders[0], "user")
}

func (suite *OrderHandlerTestSuite) TestReplaceStatusesWithEmptySetReturnsArray() {
	order := suite.createOrder()

	w := suite.request("PUT", "/orders/"+order["id"].(string)+"/status", map[string]interface{}{
		"statuses": []string{},
	})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("[]", strings.TrimSpace(w.Body.String()))
}

func (suite *OrderHandlerTestSuite) TestUpdateNullDueDateClears() {
	w := suite.request("POST", "/orders", map[string]interface{}{
		"title":   "Dated job",
		"dueDate": "2026-09-30",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	order := suite.decode(w)
	suite.NotNil(order["dueDate"])

	w = suite.request("PUT", "/orders/"+order["id"].(string), map[string]interface{}{
		"dueDate": nil,
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Nil(suite.decode(w)["dueDate"])
}

func (suite *OrderHandlerTestSuite) TestDeleteDefaultsToCancel() {
	order := suite.createOrder()

	w := suite.request("DELETE", "/orders/"+order["id"].(string), nil)
	suite.Equal(http.StatusOK, w.Code)

	statuses := suite.decode(w)["statuses"].([]interface{})
	suite.Require().Len(statuses, 1)
	suite.Equal("CANCELLED", statuses[0].(map[string]interface{})["status"])
}

func (suite *OrderHandlerTestSuite) TestHardDelete() {
	order := suite.createOrder()
	id := order["id"].(string)

	w := suite.request("DELETE", "/orders/"+id+"?action=delete", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Order deleted successfully", suite.decode(w)["message"])

	w = suite.request("GET", "/orders/"+id, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *OrderHandlerTestSuite) TestDeleteUnknownAction() {
	order := suite.createOrder()

	w := suite.request("DELETE", "/orders/"+order["id"].(string)+"?action=purge", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}
