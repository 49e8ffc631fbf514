package ollama

import (
	"testing"

	"agency/pkg/types"
)

func TestResolveModel_UnknownCategoryUsesDefault(t *testing.T) {
	c := &Client{models: map[string]string{"default": "llama2", "research": "mistral"}}
	if got := c.resolveModel("research"); got != "mistral" {
		t.Fatalf("resolveModel(research) = %q, want mistral", got)
	}
	if got := c.resolveModel("unknown_category"); got != "llama2" {
		t.Fatalf("resolveModel(unknown_category) = %q, want llama2", got)
	}
}

func TestResolveProfile_ForcesMaxTokens(t *testing.T) {
	temp := 0.9
	c := &Client{
		profiles:  map[string]types.ModelProfile{"research": {Temperature: &temp, Stop: []string{"###"}}},
		maxTokens: 64,
	}
	p := c.resolveProfile("research")
	if p.Temperature == nil || *p.Temperature != 0.9 {
		t.Fatalf("temperature not carried over: %+v", p)
	}
	if p.MaxTokens == nil || *p.MaxTokens != 64 {
		t.Fatalf("max tokens not forced: %+v", p)
	}
	params := p.Params()
	if params["temperature"] != 0.9 {
		t.Fatalf("params temperature = %v", params["temperature"])
	}
	if params["num_predict"] != 64 {
		t.Fatalf("params num_predict = %v", params["num_predict"])
	}
}

func TestResolveProfile_UnknownCategoryGetsBareProfile(t *testing.T) {
	c := &Client{profiles: map[string]types.ModelProfile{}, maxTokens: 128}
	p := c.resolveProfile("unknown_category")
	if p.Temperature != nil || p.TopP != nil || p.TopK != nil || p.RepeatPenalty != nil || p.Stop != nil {
		t.Fatalf("bare profile should carry only max tokens: %+v", p)
	}
	if p.MaxTokens == nil || *p.MaxTokens != 128 {
		t.Fatalf("max tokens not set: %+v", p)
	}
	params := p.Params()
	if len(params) != 1 || params["num_predict"] != 128 {
		t.Fatalf("params = %v, want only num_predict", params)
	}
}

func TestResolveProfile_DoesNotMutateStored(t *testing.T) {
	c := &Client{
		profiles:  map[string]types.ModelProfile{"research": {Stop: []string{"###"}}},
		maxTokens: 64,
	}
	p := c.resolveProfile("research")
	p.Stop[0] = "changed"
	mt := 999
	p.MaxTokens = &mt
	stored := c.profiles["research"]
	if stored.Stop[0] != "###" {
		t.Fatalf("stored stop mutated: %v", stored.Stop)
	}
	if stored.MaxTokens != nil {
		t.Fatalf("stored profile gained max tokens: %+v", stored)
	}
	// A second resolve sees the original values.
	again := c.resolveProfile("research")
	if again.Stop[0] != "###" || *again.MaxTokens != 64 {
		t.Fatalf("second resolve affected by mutation: %+v", again)
	}
}
