// Package docintel provides an ai.DocumentExtractor backed by a
// document-intelligence REST API that converts document bytes
// (PDF, DOCX, images) into markdown-flavored text.
package docintel
