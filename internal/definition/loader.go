package definition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kayz/promptkit/internal/logger"
	"github.com/kayz/promptkit/pkg/promptbuild"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("promptkind", func(fl validator.FieldLevel) bool {
			_, err := promptbuild.ParseKind(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Resolve maps a definition name to a file path. Names ending in .yaml or
// .yml are used as paths; anything else is looked up as <dir>/<name>.yaml.
func Resolve(dir, name string) string {
	name = strings.TrimSpace(name)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return name
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name+".yaml")
}

// Load reads and validates a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("definition %s: %w", path, err)
	}
	logger.Debug("Loaded prompt definition %q (%d components) from %s", def.Name, len(def.Components), path)
	return def, nil
}

// Parse decodes and validates a definition. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := Validate(&def); err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return &def, nil
}

// Validate checks field constraints and the rules tags cannot express.
func Validate(def *Definition) error {
	if def == nil {
		return errors.New("definition is nil")
	}
	if err := structValidator().Struct(def); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", trimNamespace(fe.Namespace()), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	for i := range def.Components {
		if err := validateComponent(&def.Components[i], fmt.Sprintf("components[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateComponent(c *ComponentDef, path string) error {
	set := 0
	if c.Content != nil {
		set++
	}
	if len(c.Items) > 0 {
		set++
	}
	if len(c.Fields) > 0 {
		set++
	}
	if set > 1 {
		return fmt.Errorf("%s: content, items and fields are mutually exclusive", path)
	}
	if set == 0 && c.When == nil {
		return fmt.Errorf("%s: one of content, items or fields is required", path)
	}
	kind, _ := promptbuild.ParseKind(c.Kind)
	if len(c.Fields) > 0 && kind != promptbuild.KindInput {
		return fmt.Errorf("%s: fields are only supported on input components", path)
	}

	if c.When == nil {
		if len(c.Then) > 0 || len(c.Else) > 0 {
			return fmt.Errorf("%s: then/else require when", path)
		}
		return nil
	}
	switch c.When.Op {
	case "eq", "ne":
		if c.When.Value == nil {
			return fmt.Errorf("%s.when: op %s requires value", path, c.When.Op)
		}
	case "gt", "gte", "lt", "lte":
		if _, ok := number(c.When.Value); !ok {
			return fmt.Errorf("%s.when: op %s requires a numeric value", path, c.When.Op)
		}
	}
	for i := range c.Then {
		if err := validateComponent(&c.Then[i], fmt.Sprintf("%s.then[%d]", path, i)); err != nil {
			return err
		}
	}
	for i := range c.Else {
		if err := validateComponent(&c.Else[i], fmt.Sprintf("%s.else[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
