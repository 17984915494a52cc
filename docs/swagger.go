// Package docs RangeGuard API.
//
// Сервис безопасности маршрутов: проверка туристических треков против
// временных охотничьих зон с буферами безопасности.
//
// Основные возможности:
// - Управление зонами охоты (окно активности, буфер в метрах)
// - Загрузка маршрутов и проверка на конфликты: contained / intersects / buffer
// - Уведомления о новых конфликтующих зонах
// - PDF отчёт о безопасности маршрута
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/pdf
//
//	Security:
//	- api_key:
//
//	SecurityDefinitions:
//	api_key:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
