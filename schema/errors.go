package schema

import (
	"fmt"
	"strings"
)

// Issue is one failed rule. Path is dotted ("terms.2024-25 Term 1.--LEC (8137).locations").
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError aggregates every issue found in one normalization call.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if issue.Path == "" {
			parts[i] = issue.Message
			continue
		}
		parts[i] = issue.Path + ": " + issue.Message
	}
	return strings.Join(parts, "; ")
}

type issueList struct {
	issues []Issue
}

func (l *issueList) add(path, message string) {
	l.issues = append(l.issues, Issue{Path: path, Message: message})
}

// has reports whether path or anything below it already failed.
func (l *issueList) has(path string) bool {
	for _, issue := range l.issues {
		if issue.Path == path || strings.HasPrefix(issue.Path, path+".") {
			return true
		}
	}
	return false
}

func (l *issueList) err() error {
	if len(l.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: l.issues}
}

func joinPath(base string, elem interface{}) string {
	if base == "" {
		return fmt.Sprint(elem)
	}
	return fmt.Sprintf("%s.%v", base, elem)
}
