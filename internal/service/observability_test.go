package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_WritesEvents(t *testing.T) {
	var buf bytes.Buffer
	env := setupRepos(t)
	svc := NewSubjectService(env.subjects, NewLogUseCaseObserver(&buf))

	_, err := svc.Create(context.Background(), "Dana")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=create-subject")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "success=false")
	assert.Contains(t, out, "level=ERROR")
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}
