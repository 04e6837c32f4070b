package cli

import (
	"github.com/spf13/pflag"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// cadenceValue lets --cadence parse straight into a domain.Cadence.
type cadenceValue struct {
	c *domain.Cadence
}

var _ pflag.Value = (*cadenceValue)(nil)

func newCadenceValue(def domain.Cadence, p *domain.Cadence) *cadenceValue {
	*p = def
	return &cadenceValue{c: p}
}

func (v *cadenceValue) String() string {
	if v.c == nil {
		return domain.Daily.String()
	}
	return v.c.String()
}

func (v *cadenceValue) Set(s string) error {
	c, err := domain.ParseCadence(s)
	if err != nil {
		return err
	}
	*v.c = c
	return nil
}

func (v *cadenceValue) Type() string { return "cadence" }
