// Package docs регистрирует описание API для swagger UI.
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
        "/api/admin/newsposts": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin-newsposts"],
                "summary": "Создать новость (только admin)",
                "parameters": [
                    {"description": "Данные новости", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateNewsPostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.NewsPost"}},
                    "400": {"description": "Ошибка запроса", "schema": {"type": "string"}}
                }
            }
        },
        "/api/admin/newsposts/{id}": {
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin-newsposts"],
                "summary": "Удалить новость (только admin)",
                "parameters": [
                    {"type": "integer", "description": "ID новости", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeleteResult"}},
                    "401": {"description": "Нет или неверный токен", "schema": {"type": "string"}},
                    "403": {"description": "Доступ запрещён", "schema": {"type": "string"}},
                    "404": {"description": "Не найдено", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin-newsposts"],
                "summary": "Обновить новость (только admin)",
                "parameters": [
                    {"type": "integer", "description": "ID новости", "name": "id", "in": "path", "required": true},
                    {"description": "Новое содержимое", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateNewsPostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.NewsPost"}},
                    "400": {"description": "Ошибка запроса", "schema": {"type": "string"}},
                    "404": {"description": "Не найдено", "schema": {"type": "string"}}
                }
            }
        },
        "/api/newsposts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["newsposts"],
                "summary": "Страница новостей",
                "parameters": [
                    {"type": "integer", "description": "Размер страницы (по умолч. 10, макс. 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Смещение первой строки (с нуля)", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Page"}},
                    "400": {"description": "Неверные параметры пагинации", "schema": {"type": "string"}}
                }
            }
        },
        "/api/newsposts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["newsposts"],
                "summary": "Получить новость по ID",
                "parameters": [
                    {"type": "integer", "description": "ID новости", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.NewsPost"}},
                    "404": {"description": "Не найдено", "schema": {"type": "string"}}
                }
            }
        },
        "/api/nodes": {
            "get": {
                "description": "Повторяющиеся id отдаются один раз, отсутствующие перечисляются в missing.",
                "produces": ["application/json"],
                "tags": ["nodes"],
                "summary": "Узлы по списку ID",
                "parameters": [
                    {"type": "string", "description": "ID через запятую", "name": "ids", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.NodesResult"}},
                    "400": {"description": "Неверный список ID", "schema": {"type": "string"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Проверка живости (пинг БД)",
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "string"}},
                    "503": {"description": "БД недоступна", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "models.NewsPost": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "type": {"type": "string", "example": "NewsPost"}
            }
        },
        "models.Page": {
            "type": "object",
            "properties": {
                "rows": {"type": "array", "items": {"$ref": "#/definitions/models.NewsPost"}},
                "count": {"type": "integer"},
                "offset": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "models.NodesResult": {
            "type": "object",
            "properties": {
                "nodes": {"type": "array", "items": {"$ref": "#/definitions/models.NewsPost"}},
                "missing": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "models.CreateNewsPostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "models.UpdateNewsPostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "models.DeleteResult": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "deleted": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NewsAdmin API",
	Description:      "Управление новостями: список, пакетная загрузка, админские операции.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
