// Package docs 注册 Swagger 文档，由 /swagger/*any 提供
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
        "/api/auth/signup": {
            "post": {"tags": ["Auth (认证)"], "summary": "注册", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "ok + user"}, "400": {"description": "参数错误"}, "409": {"description": "邮箱已注册"}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["Auth (认证)"], "summary": "登录", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "ok + token + expires_at + user"}, "401": {"description": "邮箱或密码错误"}, "429": {"description": "请求过于频繁"}}}
        },
        "/api/auth/logout": {
            "post": {"tags": ["Auth (认证)"], "summary": "注销", "produces": ["application/json"],
                "responses": {"200": {"description": "ok"}, "401": {"description": "未登录"}}}
        },
        "/api/auth/me": {
            "get": {"tags": ["Auth (认证)"], "summary": "当前用户", "produces": ["application/json"],
                "responses": {"200": {"description": "ok + user"}, "401": {"description": "未登录"}}}
        },
        "/api/cafe": {
            "get": {"tags": ["Cafe (咖啡馆)"], "summary": "当前咖啡馆", "produces": ["application/json"],
                "responses": {"200": {"description": "ok + cafe"}, "401": {"description": "未登录"}}},
            "put": {"tags": ["Cafe (咖啡馆)"], "summary": "更新咖啡馆", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "ok + cafe"}, "400": {"description": "名称为空"}, "404": {"description": "尚未创建咖啡馆"}}}
        },
        "/api/onboarding/complete": {
            "post": {"tags": ["Cafe (咖啡馆)"], "summary": "完成引导", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "ok + cafe"}, "400": {"description": "参数错误"}, "409": {"description": "已拥有咖啡馆"}}}
        },
        "/api/cafe/{id}/menu": {
            "get": {"tags": ["Menu (菜单)"], "summary": "咖啡馆菜单", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "咖啡馆 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + items"}, "403": {"description": "无权访问"}}}
        },
        "/api/cafe/{id}/ingredients": {
            "get": {"tags": ["Ingredient (配料)"], "summary": "咖啡馆配料", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "咖啡馆 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + ingredients"}, "403": {"description": "无权访问"}}}
        },
        "/api/cafe/{id}/suppliers": {
            "get": {"tags": ["Supplier (供应商)"], "summary": "咖啡馆供应商", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "咖啡馆 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + suppliers"}, "400": {"description": "ID 格式错误"}, "403": {"description": "无权访问"}}}
        },
        "/api/menu/create": {
            "post": {"tags": ["Menu (菜单)"], "summary": "创建菜单项", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "ok + item"}, "400": {"description": "参数错误"}, "409": {"description": "slug 冲突"}}}
        },
        "/api/menu/item/{id}": {
            "get": {"tags": ["Menu (菜单)"], "summary": "菜单项详情", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "菜单项 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + item"}, "403": {"description": "无权访问"}, "404": {"description": "不存在"}}},
            "delete": {"tags": ["Menu (菜单)"], "summary": "删除菜单项", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "菜单项 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok"}, "403": {"description": "无权访问"}, "404": {"description": "不存在"}}}
        },
        "/api/menu/items/ingredients/{slug}": {
            "post": {"tags": ["Ingredient (配料)"], "summary": "添加配料", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "菜单项 slug", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + ingredient"}, "403": {"description": "无权访问"}, "404": {"description": "菜单项不存在"}}}
        },
        "/api/ingredient/{slug}": {
            "get": {"tags": ["Ingredient (配料)"], "summary": "配料详情", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "配料 slug 或名称", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + ingredient"}, "403": {"description": "无权访问"}, "404": {"description": "不存在"}}},
            "delete": {"tags": ["Ingredient (配料)"], "summary": "删除配料", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "配料 slug 或名称", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok"}, "403": {"description": "无权访问"}, "404": {"description": "不存在"}}}
        },
        "/api/ingredients/{slug}/suppliers": {
            "get": {"tags": ["Supplier (供应商)"], "summary": "配料供应商列表", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "配料 slug 或名称", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + suppliers"}, "403": {"description": "无权访问"}, "404": {"description": "配料不存在"}}},
            "post": {"tags": ["Supplier (供应商)"], "summary": "添加供应商", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "配料 slug 或名称", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + supplier"}, "400": {"description": "参数错误"}, "403": {"description": "无权访问"}, "404": {"description": "配料不存在"}}}
        },
        "/api/suppliers/{id}": {
            "get": {"tags": ["Supplier (供应商)"], "summary": "供应商详情", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "供应商 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + supplier"}, "403": {"description": "无权访问"}, "404": {"description": "不存在"}}},
            "delete": {"tags": ["Supplier (供应商)"], "summary": "删除供应商", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "供应商 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok"}, "403": {"description": "无权访问"}, "404": {"description": "不存在"}}}
        },
        "/api/employees": {
            "get": {"tags": ["Employee (员工)"], "summary": "员工列表", "produces": ["application/json"],
                "responses": {"200": {"description": "ok + employees"}}},
            "post": {"tags": ["Employee (员工)"], "summary": "创建员工", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "ok + employee"}, "400": {"description": "参数错误"}}}
        },
        "/api/employees/{id}": {
            "get": {"tags": ["Employee (员工)"], "summary": "员工详情", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "员工 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok + employee"}, "404": {"description": "不存在"}}},
            "delete": {"tags": ["Employee (员工)"], "summary": "删除员工", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "员工 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok"}, "404": {"description": "不存在"}}}
        }
    }
}`

// SwaggerInfo 文档元信息
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "咖啡馆管理后台 API",
	Description:      "多租户咖啡馆管理：菜单、配料、供应商、员工",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
