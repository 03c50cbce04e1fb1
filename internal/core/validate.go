package core

const (
	WarnFooterNotLast  = "footer should be last"
	WarnNavbarNotFirst = "navbar should be first"
	WarnMissingFooter  = "consider adding a footer"
	WarnMissingNavbar  = "consider adding a navbar"
)

// Validate checks landmark placement. Warnings are advisory and never block
// generation.
func Validate(instances []BlockInstance) []string {
	warnings := []string{}

	footerIdx := indexOfType(instances, FooterType)
	navbarIdx := indexOfType(instances, NavbarType)

	if footerIdx != -1 && footerIdx != len(instances)-1 {
		warnings = append(warnings, WarnFooterNotLast)
	}
	if navbarIdx > 0 {
		warnings = append(warnings, WarnNavbarNotFirst)
	}
	if footerIdx == -1 {
		warnings = append(warnings, WarnMissingFooter)
	}
	if navbarIdx == -1 {
		warnings = append(warnings, WarnMissingNavbar)
	}

	return warnings
}

func indexOfType(instances []BlockInstance, typeID string) int {
	for i, inst := range instances {
		if inst.TypeID == typeID {
			return i
		}
	}
	return -1
}
