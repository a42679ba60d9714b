package main

import (
	"github.com/gin-gonic/gin"
	"github.com/lbliii/milodocs/api/rest/ask"
	"github.com/lbliii/milodocs/api/rest/summarize"
	"github.com/lbliii/milodocs/internal/assistant"
	"github.com/lbliii/milodocs/internal/config"
	"github.com/lbliii/milodocs/internal/llm"
	"github.com/lbliii/milodocs/internal/ratelimit"
	"github.com/lbliii/milodocs/internal/retriever"
	"github.com/lbliii/milodocs/internal/storage"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	store    *storage.Client
	limiter  *ratelimit.Limiter
	services *Services
	router   *gin.Engine
}

// holds all external service clients (LLM, retriever, assistant)
type Services struct {
	Assistant *assistant.Service
	LLM       llm.LLM
	Retriever *retriever.Client
}

// what the ask and summarize routes need
type Assistant interface {
	ask.Asker
	summarize.Summarizer
}
