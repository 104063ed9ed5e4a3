// Package docs holds the Swagger 2.0 document served under /api-docs. It is
// maintained by hand alongside the handler annotations.
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
        "/emotions": {
            "get": {
                "description": "Returns the read-only emotion reference table ordered by id.",
                "produces": ["application/json"],
                "tags": ["Emotions"],
                "summary": "List emotions",
                "operationId": "listEmotions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.EmotionListResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}}
                }
            }
        },
        "/entries": {
            "get": {
                "description": "Returns every entry, newest first.",
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "List entries",
                "operationId": "listEntries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.EntryListResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}}
                }
            },
            "post": {
                "description": "Stores a new entry. entry_datetime_utc and created_at are set to the creation instant.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "Create an entry",
                "operationId": "createEntry",
                "parameters": [
                    {"description": "Entry payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.EntryBody"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.EntryResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}}
                }
            }
        },
        "/entries/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "Get an entry",
                "operationId": "getEntry",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Entry ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.EntryResponse"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}},
                    "404": {"description": "Entry not found", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}}
                }
            },
            "put": {
                "description": "Overwrites the writable fields. Sending identical values succeeds.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "Replace an entry",
                "operationId": "replaceEntry",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Entry ID", "name": "id", "in": "path", "required": true},
                    {"description": "Full entry payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.EntryBody"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.EntryResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}},
                    "404": {"description": "Entry not found", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "Delete an entry",
                "operationId": "deleteEntry",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Entry ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}},
                    "404": {"description": "Entry not found", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}}
                }
            },
            "patch": {
                "description": "Applies the supplied fields. Empty payloads and unknown fields are rejected.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "Partially update an entry",
                "operationId": "updateEntry",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Entry ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.EntryPatchBody"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.EntryResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}},
                    "404": {"description": "Entry not found", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/middleware.ErrorBody"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "operationId": "health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Emotion": {
            "type": "object",
            "properties": {
                "emotion_id": {"type": "integer"},
                "emotion_name": {"type": "string"},
                "polarity": {"type": "integer"},
                "strength": {"type": "integer"}
            }
        },
        "domain.Entry": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "created_at": {"type": "string"},
                "entry_datetime_utc": {"type": "string"},
                "entry_id": {"type": "integer"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "handlers.EmotionListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Emotion"}},
                "status": {"type": "string", "example": "success"}
            }
        },
        "handlers.EntryBody": {
            "type": "object",
            "properties": {
                "body": {"type": "string", "example": "Walked by the river today."}
            }
        },
        "handlers.EntryListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Entry"}},
                "status": {"type": "string", "example": "success"}
            }
        },
        "handlers.EntryPatchBody": {
            "type": "object",
            "properties": {
                "body": {"type": "string", "example": "Edited text"}
            }
        },
        "handlers.EntryResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Entry"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "deleted"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "middleware.ErrorBody": {
            "type": "object",
            "properties": {
                "cause": {"type": "string"},
                "message": {"type": "string", "example": "Entry not found"},
                "stack": {"type": "string"},
                "status": {"type": "string", "example": "error"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "JewelNotes API",
	Description:      "Journaling API: diary entries and the emotion reference table.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
