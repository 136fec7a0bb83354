package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePromptsPerCategory(t *testing.T) {
	stub := &stubCompleter{responses: []string{"В1", "В2", "В3"}}
	generator := NewGenerator(stub, testFlowConfig())

	_, err := generator.Generate(context.Background(), CategoryAptitude, nil)
	require.NoError(t, err)
	assert.Equal(t, "Give 10 questions for testing my IQ. Question in russian.", stub.prompts[0])

	_, err = generator.Generate(context.Background(), CategoryInterpersonal, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"Сформулируйте 10 вопрос, связанный с софт-навыком <<коммуникация>>, <<руководство>>, <<решение проблем>>, <<адаптивность>>.",
		stub.prompts[1])

	_, err = generator.Generate(context.Background(), CategoryTechnical, []string{"Go", "PostgreSQL"})
	require.NoError(t, err)
	assert.Equal(t, "Сформулируйте 10 вопрос, связанный с технологиями <<Go>>, <<PostgreSQL>>.", stub.prompts[2])
}

func TestGenerateSkipsEmptyLines(t *testing.T) {
	stub := &stubCompleter{responses: []string{"\n\nВопрос 1\n\n  \nВопрос 2\n"}}
	generator := NewGenerator(stub, testFlowConfig())

	questions, err := generator.Generate(context.Background(), CategoryAptitude, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Вопрос 1", "Вопрос 2"}, questions)
}

func TestGenerateEmptyResponseFails(t *testing.T) {
	stub := &stubCompleter{responses: []string{"\n\n  \n"}}
	generator := NewGenerator(stub, testFlowConfig())

	_, err := generator.Generate(context.Background(), CategoryAptitude, nil)
	assert.Error(t, err)
}

func TestGenerateServiceErrorPropagates(t *testing.T) {
	stub := &stubCompleter{err: errors.New("недоступен")}
	generator := NewGenerator(stub, testFlowConfig())

	_, err := generator.Generate(context.Background(), CategoryAptitude, nil)
	assert.Error(t, err)
}

func TestCategorySuccessor(t *testing.T) {
	next, ok := CategoryAptitude.Next()
	require.True(t, ok)
	assert.Equal(t, CategoryInterpersonal, next)

	next, ok = CategoryInterpersonal.Next()
	require.True(t, ok)
	assert.Equal(t, CategoryTechnical, next)

	_, ok = CategoryTechnical.Next()
	assert.False(t, ok)
}
