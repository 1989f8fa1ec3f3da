package synergy

import "context"

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
	Prompts       []string
	Temperatures  []float32
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Temperatures = append(m.Temperatures, temperature)
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
