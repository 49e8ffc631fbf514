package main

// General API documentation for swaggo.
//
// @title           agency API
// @version         1.0
// @description     HTTP gateway for local LLM inference and agent task dispatch.
//
// @contact.name   agency maintainers
// @contact.url    https://github.com/your-org/agency
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
