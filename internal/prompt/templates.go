package prompt

// System role definition embedded at the top of every payload.
const (
	// DocumentationRole frames the backend as a documentation writer for
	// the detected project type. Takes the dominant language name.
	DocumentationRole = "You are a technical documentation expert specializing in %s. " +
		"Generate a README.md based ONLY on the actual code provided, not assumptions. " +
		"Focus on the main implementation files and ignore configuration or build files."

	// UnknownProjectType is used when no language could be classified.
	UnknownProjectType = "Unknown"
)

// Instruction templates. The verbosity directive maps to exactly one of
// these; the mapping is a pure function of the directive.
const (
	DetailedTemplate = `You are analyzing a %s project's source code to generate a README.md file.
Focus on the most important implementation files, which have been automatically identified and prioritized.

Key points to analyze:
1. Look for main entry points and core functionality
2. Identify the project's primary features and purpose
3. Note any command-line arguments, API endpoints, or configuration options
4. Identify required dependencies from imports/package files

Please include:
1. Project Title (based on the main functionality)
2. Clear description of what the code actually does
3. Installation Instructions (specific to %s)
4. Usage Examples (based on actual implementation)
5. Project Structure (focusing on key files)
6. Dependencies (based on actual imports/requirements)
7. Contributing Guidelines
8. License Information (if found)

Do not add any footer - it will be added automatically.`

	ConciseTemplate = `You are analyzing a %s project's source code to generate a concise README.md.
Focus on the most important implementation files that have been automatically identified.

Create a brief README focusing on:
1. What the code actually does (based on the implementation)
2. How to use it (based on actual code patterns found)
3. Basic requirements (specific to %s)

Be direct and accurate. Only describe functionality that exists in the code.
Do not add any footer - it will be added automatically.`
)

// Section markers used when rendering the payload body.
const (
	LanguageSectionHeader = "Language breakdown:"
	FileSectionHeader     = "Selected files:"
	CodeSectionHeader     = "Here's the actual code to analyze:"
	FilePrefix            = "# File: "
	TruncatedMarker       = "[content truncated]"
	UnreadableMarker      = "[file could not be read]"
)
