// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/batches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "List batches, newest first",
                "parameters": [
                    {"type": "string", "description": "PENDING, IN_PROGRESS, COMPLETED or CANCELLED", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.Batch"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/batches/generate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Group pending orders into delivery batches",
                "parameters": [
                    {"description": "Per-run capacity overrides", "name": "limits", "in": "body", "schema": {"$ref": "#/definitions/http.GenerateBatchesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.GenerateBatchesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/batches/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Batch counts per status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.BatchStats"}}
                }
            }
        },
        "/batches/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Get a batch with its orders",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Batch"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/batches/{id}/driver": {
            "patch": {
                "consumes": ["application/json"],
                "tags": ["batches"],
                "summary": "Hand a pending batch to a driver",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "id", "in": "path", "required": true},
                    {"description": "Driver", "name": "driver", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AssignDriverRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/drivers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["drivers"],
                "summary": "List drivers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.Driver"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["drivers"],
                "summary": "Register a driver",
                "parameters": [
                    {"description": "Driver", "name": "driver", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.NewDriver"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Register a pending order",
                "parameters": [
                    {"description": "Order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.NewOrder"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders/pending": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders waiting for the next generation run",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.PendingOrder"}}}
                }
            }
        },
        "/orders/{id}/deliver": {
            "post": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Mark an order delivered",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DeliverOrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.AssignDriverRequest": {
            "type": "object",
            "properties": {"driverId": {"type": "string"}}
        },
        "http.Batch": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string"},
                "driverId": {"type": "string"},
                "totalWeight": {"type": "number"},
                "orderCount": {"type": "integer"},
                "createdAt": {"type": "string"},
                "completedAt": {"type": "string"},
                "completionNotes": {"type": "string"},
                "orders": {"type": "array", "items": {"$ref": "#/definitions/http.BatchOrder"}}
            }
        },
        "http.BatchOrder": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "postalCode": {"type": "string"},
                "address": {"type": "string"},
                "weight": {"type": "number"},
                "status": {"type": "string"},
                "location": {"$ref": "#/definitions/http.Location"}
            }
        },
        "http.BatchStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "byStatus": {"type": "object", "additionalProperties": {"type": "integer"}},
                "totalWeight": {"type": "number"},
                "pendingOrders": {"type": "integer"}
            }
        },
        "http.CreatedResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}}
        },
        "http.DeliverOrderResponse": {
            "type": "object",
            "properties": {"orderId": {"type": "string"}, "batchCompleted": {"type": "boolean"}}
        },
        "http.Driver": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "activeBatches": {"type": "integer"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}
        },
        "http.GenerateBatchesRequest": {
            "type": "object",
            "properties": {"maxOrders": {"type": "integer"}, "maxWeight": {"type": "number"}}
        },
        "http.GenerateBatchesResponse": {
            "type": "object",
            "properties": {
                "batches": {"type": "array", "items": {"$ref": "#/definitions/http.GeneratedBatch"}},
                "orderCount": {"type": "integer"},
                "clusters": {"type": "integer"},
                "iterations": {"type": "integer"},
                "converged": {"type": "boolean"},
                "maxOrders": {"type": "integer"},
                "maxWeight": {"type": "number"}
            }
        },
        "http.GeneratedBatch": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "orderIds": {"type": "array", "items": {"type": "string"}},
                "orderCount": {"type": "integer"},
                "totalWeight": {"type": "number"},
                "status": {"type": "string"}
            }
        },
        "http.Location": {
            "type": "object",
            "properties": {"lat": {"type": "number"}, "lng": {"type": "number"}}
        },
        "http.NewDriver": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "phone": {"type": "string"}}
        },
        "http.NewOrder": {
            "type": "object",
            "properties": {
                "postalCode": {"type": "string"},
                "address": {"type": "string"},
                "weight": {"type": "number"},
                "customerName": {"type": "string"},
                "customerPhone": {"type": "string"},
                "paymentType": {"type": "string", "enum": ["UPI", "COD", "PREPAID"]},
                "amount": {"type": "number"}
            }
        },
        "http.PendingOrder": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "postalCode": {"type": "string"},
                "address": {"type": "string"},
                "weight": {"type": "number"},
                "createdAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Dispatch API",
	Description:      "Order intake, batch generation and delivery tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
