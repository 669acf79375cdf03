// Package docs registers the OpenAPI document served under /swagger. Keep it
// in sync with the godoc annotations on the handlers.
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
        "/api/dashboard": {
            "get": {
                "description": "Totals, top products by quantity and quantity per category",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard aggregates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DashboardResponse"}},
                    "500": {"description": "Internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/api/products": {
            "get": {
                "description": "Returns every inventory record in store order",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List all products",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductsResult"}},
                    "500": {"description": "Internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/api/products/import": {
            "post": {
                "description": "Accepts the same layout the export produces. Existing names are skipped unless mode=update.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Import products via CSV",
                "parameters": [
                    {"type": "file", "description": "CSV file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Import mode (skip|update)", "name": "mode", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ImportProductsResult"}},
                    "400": {"description": "Invalid file", "schema": {"type": "string"}},
                    "500": {"description": "Internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/export.csv": {
            "get": {
                "description": "CSV with a header row and one row per record",
                "produces": ["text/csv"],
                "tags": ["products"],
                "summary": "Download the inventory report",
                "responses": {
                    "200": {"description": "CSV file", "schema": {"type": "string"}},
                    "500": {"description": "Internal error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "dashboard.CategoryTotal": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "handlers.DashboardResponse": {
            "type": "object",
            "properties": {
                "empty": {"type": "boolean"},
                "product_count": {"type": "integer"},
                "total_quantity": {"type": "integer"},
                "total_value": {"type": "string"},
                "total_value_formatted": {"type": "string"},
                "category_count": {"type": "integer"},
                "top_products": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}},
                "category_totals": {"type": "array", "items": {"$ref": "#/definitions/dashboard.CategoryTotal"}}
            }
        },
        "handlers.ImportProductsResult": {
            "type": "object",
            "properties": {
                "imported": {"type": "integer"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handlers.ProductValidationError"}}
            }
        },
        "handlers.Meta": {
            "type": "object",
            "properties": {
                "total_count": {"type": "integer"}
            }
        },
        "handlers.ProductResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "number"}
            }
        },
        "handlers.ProductValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "handlers.ProductsResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handlers.ProductResponse"}},
                "meta": {"$ref": "#/definitions/handlers.Meta"}
            }
        },
        "models.Product": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Inventory Dashboard API",
	Description:      "Read and import endpoints for the inventory management dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
