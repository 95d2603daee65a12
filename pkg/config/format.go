package config

// FormatRuleID renders a rule identifier in the given format. Rules without a
// name always render as their ID.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatName:
		return ruleName
	case RuleFormatCombined:
		return ruleID + " (" + ruleName + ")"
	default:
		return ruleID
	}
}
