// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/docqa/answer"
	"github.com/poiesic/docqa/core"
)

const maxUploadBytes = 64 << 20

type answerRequest struct {
	UserQuestion   string `json:"user_question"`
	ConversationID string `json:"conversation_id"`
}

type answerResponse struct {
	Answer         string              `json:"answer"`
	ConversationID string              `json:"conversation_id"`
	Documents      []map[string]string `json:"documents"`
}

type uploadResponse struct {
	Message string `json:"message"`
	Chunks  int    `json:"chunks"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// handleUpload ingests a document submitted either as a multipart file
// or as a url form field, then indexes the resulting chunks. Submitting
// the same document twice indexes it twice.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.logger.Warn("malformed upload form", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "expected multipart form data"})
		return
	}

	var (
		chunks []core.Chunk
		err    error
	)

	if url := strings.TrimSpace(r.FormValue("url")); url != "" {
		chunks, err = s.ingestor.IngestURL(ctx, url)
	} else {
		file, header, ferr := r.FormFile("file")
		if ferr != nil {
			s.logger.Warn("upload without file or url", "err", ferr)
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "a file or url is required"})
			return
		}
		defer file.Close()

		content, rerr := io.ReadAll(file)
		if rerr != nil {
			s.logger.Error("error reading uploaded file", "filename", header.Filename, "err", rerr)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "upload failed"})
			return
		}

		contentType := r.FormValue("file_type")
		if contentType == "" {
			contentType = header.Header.Get("Content-Type")
		}
		chunks, err = s.ingestor.IngestBytes(ctx, content, contentType)
	}
	if err != nil {
		s.logger.Error("error ingesting document", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "upload failed"})
		return
	}

	indexed, err := s.indexer.Index(ctx, chunks)
	if err != nil {
		// Chunks written before the fault stay in the index.
		s.logger.Error("error indexing document", "indexed", len(indexed), "total", len(chunks), "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "upload failed"})
		return
	}

	s.logger.Info("document indexed", "chunks", len(indexed))
	writeJSON(w, http.StatusOK, uploadResponse{Message: "document indexed", Chunks: len(indexed)})
}

// handleAnswer answers a question grounded in the indexed documents and
// the conversation identified by conversation_id. A blank or missing
// conversation_id starts a new conversation.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("malformed answer request", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "malformed request body"})
		return
	}

	result, conversationID, err := s.answerer.Answer(r.Context(), req.UserQuestion, req.ConversationID)
	if err != nil {
		if errors.Is(err, answer.ErrEmptyQuestion) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "user_question must not be empty"})
			return
		}
		s.logger.Error("error answering question", "conversationID", req.ConversationID, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "failed to generate answer"})
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{
		Answer:         result.Answer,
		ConversationID: conversationID,
		Documents:      result.Documents,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("error encoding response", "err", err)
	}
}
