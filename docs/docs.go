// Package docs registers the OpenAPI description served under /swagger.
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
        "/health": {
            "get": {
                "description": "Reports the status of the service and of every configured sink",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/forms/employee": {
            "get": {
                "description": "Builds a synthetic \"formulario de conocimiento de empleados\". The same seed returns the same form on the same day.",
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Generate an employee-knowledge form",
                "parameters": [
                    {"type": "integer", "description": "Seed; omitted or 0 draws a random one", "name": "seed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Invalid seed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/forms/counterparty": {
            "get": {
                "description": "Builds a synthetic SAGRILAFT counterparty form for a natural person or a company.",
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Generate a counterparty-knowledge form",
                "parameters": [
                    {"type": "integer", "description": "Seed; omitted or 0 draws a random one", "name": "seed", "in": "query"},
                    {"type": "boolean", "description": "Return the flat projection with explicit nulls", "name": "legacy", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/forms/{type}/batch": {
            "post": {
                "description": "Builds count forms from one base seed, optionally storing them in MongoDB and publishing them to RabbitMQ.",
                "produces": ["application/json"],
                "tags": ["forms"],
                "summary": "Generate a batch of forms",
                "parameters": [
                    {"enum": ["employee", "counterparty"], "type": "string", "description": "Form type", "name": "type", "in": "path", "required": true},
                    {"type": "integer", "description": "Number of forms (default 1)", "name": "count", "in": "query"},
                    {"type": "integer", "description": "Base seed; omitted or 0 draws a random one", "name": "seed", "in": "query"},
                    {"type": "boolean", "description": "Store the batch in MongoDB", "name": "persist", "in": "query"},
                    {"type": "boolean", "description": "Publish the batch to RabbitMQ", "name": "publish", "in": "query"},
                    {"type": "boolean", "description": "Use the flat counterparty projection", "name": "legacy", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.BatchResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Requested sink is not configured", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/fields/{field}": {
            "get": {
                "description": "Generates one named field. An unsupported id_type yields the \"NaN\" sentinel with a warning instead of an error.",
                "produces": ["application/json"],
                "tags": ["fields"],
                "summary": "Generate a single field",
                "parameters": [
                    {"type": "string", "description": "Field name, e.g. id_number, birthdate, phone", "name": "field", "in": "path", "required": true},
                    {"type": "integer", "description": "Seed; omitted or 0 draws a random one", "name": "seed", "in": "query"},
                    {"type": "string", "description": "Id type for id_number (CC, CE, NIT, PA)", "name": "id_type", "in": "query"},
                    {"type": "boolean", "description": "Colombian phone number (default true)", "name": "colombian", "in": "query"},
                    {"type": "integer", "description": "Minimum age for birthdate", "name": "min_age", "in": "query"},
                    {"type": "integer", "description": "Maximum age for birthdate", "name": "max_age", "in": "query"},
                    {"type": "string", "description": "Birthdate (YYYY-MM-DD) for dependent dates", "name": "birthdate", "in": "query"},
                    {"type": "string", "description": "Contract start date (YYYY-MM-DD) for contract_end_date", "name": "start_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.FieldValue"}},
                    "400": {"description": "Unknown field or invalid parameters", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "services": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "handlers.BatchResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "forms": {"type": "array", "items": {"type": "object"}},
                "persisted": {"type": "boolean"},
                "published": {"type": "boolean"},
                "seed": {"type": "string"}
            }
        },
        "services.FieldValue": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "seed": {"type": "string"},
                "value": {},
                "warning": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Synthforms API",
	Description:      "Generates synthetic Colombian KYC forms (employee knowledge and SAGRILAFT counterparty knowledge) for testing document pipelines.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
