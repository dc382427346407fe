package layouts

const siteName = "myBlue Registration"

// CalculateTitle prefixes the site name with the page title, when there is one.
func CalculateTitle(title string) string {
	if title == "" {
		return siteName
	}
	return title + " - " + siteName
}
