// Package docs holds the OpenAPI description served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/user/registration": {"post": {"tags": ["user"], "summary": "Register a new user",
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.RegisterResponse"}},
                "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}},
        "/user/login": {"post": {"tags": ["user"], "summary": "Login user",
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}},
        "/user/activate/{link}": {"get": {"tags": ["user"], "summary": "Activate account",
            "parameters": [{"in": "path", "name": "link", "type": "string", "required": true}],
            "responses": {"302": {"description": "Found"},
                "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}},
        "/user/logout": {"post": {"tags": ["user"], "summary": "Logout user",
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DeleteResponse"}}}}},
        "/user/refresh": {"post": {"tags": ["user"], "summary": "Refresh tokens",
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RefreshResponse"}},
                "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}},
        "/user/me": {"get": {"tags": ["user"], "summary": "Get current user profile", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}}},
        "/project/create": {"post": {"tags": ["project"], "summary": "Create project", "security": [{"BearerAuth": []}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Project"}}}}},
        "/project": {"get": {"tags": ["project"], "summary": "List projects", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Project"}}}}}},
        "/project/{id}": {"get": {"tags": ["project"], "summary": "Get project", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Project"}}}}},
        "/project/delete/{id}": {"delete": {"tags": ["project"], "summary": "Delete project", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DeleteResponse"}}}}},
        "/task": {
            "post": {"tags": ["task"], "summary": "Create task", "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Task"}}}},
            "get": {"tags": ["task"], "summary": "List tasks", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Task"}}}}}},
        "/task/{id}": {
            "get": {"tags": ["task"], "summary": "Get task", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Task"}}}},
            "put": {"tags": ["task"], "summary": "Update task", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UpdateResponse"}}}},
            "delete": {"tags": ["task"], "summary": "Delete task", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DeleteResponse"}}}}}
    },
    "definitions": {
        "dto.RegisterRequest": {"type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 8, "maxLength": 32}, "fullName": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 8, "maxLength": 32}}},
        "dto.AuthResponse": {"type": "object",
            "properties": {"accessToken": {"type": "string"}, "refreshToken": {"type": "string"}}},
        "dto.RegisterResponse": {"type": "object",
            "properties": {"accessToken": {"type": "string"}, "refreshToken": {"type": "string"}, "user": {"$ref": "#/definitions/dto.UserResponse"}}},
        "dto.RefreshResponse": {"type": "object",
            "properties": {"accessToken": {"type": "string"}, "refreshToken": {"type": "string"}, "id": {"type": "string"}, "email": {"type": "string"}, "isActivated": {"type": "boolean"}}},
        "dto.UserResponse": {"type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "fullName": {"type": "string"}, "isActivated": {"type": "boolean"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "dto.DeleteResponse": {"type": "object", "properties": {"deletedCount": {"type": "integer"}}},
        "dto.UpdateResponse": {"type": "object", "properties": {"matchedCount": {"type": "integer"}}},
        "dto.ErrorResponse": {"type": "object",
            "properties": {"error": {"type": "string"}, "message": {"type": "string"}, "details": {"type": "object"}}},
        "domain.Project": {"type": "object",
            "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "startDate": {"type": "string"}, "endDate": {"type": "string"}, "tasks": {"type": "array", "items": {"type": "string"}}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "domain.Task": {"type": "object",
            "properties": {"id": {"type": "string"}, "projectId": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string", "enum": ["new", "in_progress", "completed"]}, "priority": {"type": "integer"}, "deadline": {"type": "string"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Task Manager API",
	Description:      "Accounts, sessions, projects and tasks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
