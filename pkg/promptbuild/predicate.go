package promptbuild

// If adapts a boolean function into a Predicate.
func If(fn func(p Params) bool) Predicate {
	return func(p Params) (bool, error) {
		return fn(p), nil
	}
}

// ParamTruthy holds when the named parameter is truthy.
func ParamTruthy(name string) Predicate {
	return func(p Params) (bool, error) {
		return p.Truthy(name), nil
	}
}

// ParamPresent holds when the named parameter is set and not nil.
func ParamPresent(name string) Predicate {
	return func(p Params) (bool, error) {
		_, ok := p.Lookup(name)
		return ok, nil
	}
}

// ParamEquals holds when the named parameter equals want. Numbers compare by
// value and everything else by textual form, so 3, 3.0 and "3" are equal.
func ParamEquals(name string, want any) Predicate {
	return func(p Params) (bool, error) {
		got, ok := p.Lookup(name)
		if !ok {
			return isNil(want), nil
		}
		if isNil(want) {
			return false, nil
		}
		if gf, ok := toFloat(got); ok {
			if wf, ok := toFloat(want); ok {
				return gf == wf, nil
			}
		}
		return stringify(got) == stringify(want), nil
	}
}

// ParamGreaterThan holds when the named parameter is a number above limit.
// Missing and non-numeric parameters never satisfy a comparison.
func ParamGreaterThan(name string, limit float64) Predicate {
	return compareParam(name, func(v float64) bool { return v > limit })
}

// ParamAtLeast holds when the named parameter is a number no lower than limit.
func ParamAtLeast(name string, limit float64) Predicate {
	return compareParam(name, func(v float64) bool { return v >= limit })
}

// ParamLessThan holds when the named parameter is a number below limit.
func ParamLessThan(name string, limit float64) Predicate {
	return compareParam(name, func(v float64) bool { return v < limit })
}

// ParamAtMost holds when the named parameter is a number no higher than limit.
func ParamAtMost(name string, limit float64) Predicate {
	return compareParam(name, func(v float64) bool { return v <= limit })
}

func compareParam(name string, cmp func(float64) bool) Predicate {
	return func(p Params) (bool, error) {
		f, ok := p.Number(name)
		if !ok {
			return false, nil
		}
		return cmp(f), nil
	}
}

// Not negates pred.
func Not(pred Predicate) Predicate {
	return func(p Params) (bool, error) {
		ok, err := pred(p)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}

// All holds when every predicate holds. It stops at the first failure.
func All(preds ...Predicate) Predicate {
	return func(p Params) (bool, error) {
		for _, pred := range preds {
			ok, err := pred(p)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Any holds when at least one predicate holds.
func Any(preds ...Predicate) Predicate {
	return func(p Params) (bool, error) {
		for _, pred := range preds {
			ok, err := pred(p)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
}
