package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/developingjames/patchbundle/pkg/envelope"
	"github.com/developingjames/patchbundle/pkg/operations"
)

// TestAutomaticOffsetCalculation covers the core scenario where a bundle
// references every hunk by its position in the ORIGINAL file, and the
// engine has to track the cumulative line delta across hunks on its own.
func TestAutomaticOffsetCalculation(t *testing.T) {
	tempDir := t.TempDir()

	originalContent := `package main

import (
	"fmt"
	"log"
)

func main() {
	fmt.Println("Hello World")

	result := calculate(5, 3)
	fmt.Printf("Result: %d\n", result)
}

func calculate(a, b int) int {
	return a + b
}

func helper() {
	log.Println("Helper called")
}

// End of file`

	filePath := filepath.Join(tempDir, "example.go")
	if err := os.WriteFile(filePath, []byte(originalContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	bundle := `<FILE_CHANGES>
<FILE_PATCH file_path="example.go">
@@ -3,2 +3,3 @@
 import (
 	"fmt"
+	"errors"
 	"log"
@@ -8,2 +9,4 @@
 func main() {
+	// Initialize the application
 	fmt.Println("Hello World")
+	fmt.Println("Starting calculations...")

@@ -15,1 +18,3 @@
 func calculate(a, b int) int {
+	if a < 0 || b < 0 {
+		return 0
+	}
 	return a + b
@@ -19,2 +24,4 @@
 func helper() {
+	fmt.Println("Debug: Helper function called")
 	log.Println("Helper called")
+	fmt.Println("Debug: Helper function completed")
</FILE_PATCH>
</FILE_CHANGES>`

	directives, _, found := envelope.Extract(bundle)
	if !found {
		t.Fatalf("expected a FILE_CHANGES block to be found")
	}

	executor, rc := newExecutor(operations.NewRealFileSystem())
	outcomes := executor.Execute(directives, tempDir, rc)
	for _, o := range outcomes {
		if !o.Success {
			t.Fatalf("directive %s failed: %s", o.FilePath, o.Error)
		}
	}

	modifiedContent, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("failed to read modified file: %v", err)
	}

	expectedContent := `package main

import (
	"fmt"
	"errors"
	"log"
)

func main() {
	// Initialize the application
	fmt.Println("Hello World")
	fmt.Println("Starting calculations...")

	result := calculate(5, 3)
	fmt.Printf("Result: %d\n", result)
}

func calculate(a, b int) int {
	if a < 0 || b < 0 {
		return 0
	}
	return a + b
}

func helper() {
	fmt.Println("Debug: Helper function called")
	log.Println("Helper called")
	fmt.Println("Debug: Helper function completed")
}

// End of file`

	if strings.TrimSpace(string(modifiedContent)) != strings.TrimSpace(expectedContent) {
		t.Errorf("automatic offset calculation failed.\n\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(modifiedContent))
	}
}

// TestOffsetCalculationWithComplexChanges covers mixed adds, removals and a
// pure-deletion hunk (no remaining context of its own) across one file.
func TestOffsetCalculationWithComplexChanges(t *testing.T) {
	tempDir := t.TempDir()

	originalContent := `# Project Configuration

## Database Settings
host = localhost
port = 5432
database = myapp
user = admin
password = secret

## API Settings
endpoint = https://api.example.com
timeout = 30
retries = 3

## Cache Settings
enabled = true
ttl = 3600
provider = redis

## Logging
level = info
format = json`

	filePath := filepath.Join(tempDir, "config.txt")
	if err := os.WriteFile(filePath, []byte(originalContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	bundle := `<FILE_CHANGES>
<FILE_PATCH file_path="config.txt">
@@ -4,3 +4,4 @@
 ## Database Settings
 host = localhost
+port_backup = 5433
-port = 5432
+port = 3306
 database = myapp
@@ -8,1 +9,0 @@
-password = secret
@@ -12,3 +12,3 @@
 endpoint = https://api.example.com
+version = v2
 timeout = 30
-retries = 3
+retries = 5
@@ -18,1 +18,3 @@
 provider = redis
+host = localhost:6379
+cluster = false
</FILE_PATCH>
</FILE_CHANGES>`

	directives, _, found := envelope.Extract(bundle)
	if !found {
		t.Fatalf("expected a FILE_CHANGES block to be found")
	}

	executor, rc := newExecutor(operations.NewRealFileSystem())
	outcomes := executor.Execute(directives, tempDir, rc)
	for _, o := range outcomes {
		if !o.Success {
			t.Fatalf("directive %s failed: %s", o.FilePath, o.Error)
		}
	}

	modifiedContent, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("failed to read modified file: %v", err)
	}

	expectedContent := `# Project Configuration

## Database Settings
host = localhost
port_backup = 5433
port = 3306
database = myapp
user = admin

## API Settings
endpoint = https://api.example.com
version = v2
timeout = 30
retries = 5

## Cache Settings
enabled = true
ttl = 3600
provider = redis
host = localhost:6379
cluster = false

## Logging
level = info
format = json`

	if strings.TrimSpace(string(modifiedContent)) != strings.TrimSpace(expectedContent) {
		t.Errorf("complex offset calculation failed.\n\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(modifiedContent))
	}
}

// TestMultipleHunksOriginalLineNumbers exercises offset tracking at a
// larger scale, over a longer prose document with several widely spaced
// hunks.
func TestMultipleHunksOriginalLineNumbers(t *testing.T) {
	tempDir := t.TempDir()

	originalContent := `# Software Component Documentation
#component #system #architecture

## Overview
This component handles user authentication and session management. It provides secure login functionality and maintains user state across application sessions.

## Features
The system includes **multi-factor authentication** and supports various authentication methods including password-based and token-based approaches.

## Implementation
Clean, modular design with clear separation of concerns. Follows established security patterns and best practices.

## Dependencies
- Core authentication library for password hashing
- Session management utilities for state persistence
- Token validation services for API access

## Security Model
🔒 Defense in Depth / 🛡️ Zero Trust
Assumes all requests are potentially malicious until proven otherwise. Every operation requires explicit authentication and authorization.

## Core Principle
> "Security through transparency and verification, not obscurity."

## Known Issues
- Memory usage increases with concurrent sessions
- Memory usage increases with concurrent sessions

## Design Goals
This system prioritizes security and reliability over performance. The goal is to provide bulletproof authentication that scales with user growth while maintaining strict security standards.

## Implementation Notes

### Error Handling
> **System**: "Authentication failed. Please check your credentials and try again. If the problem persists, contact system administration."

### Logging Strategy
> **System**: "All authentication attempts are logged for security auditing. Successful logins are recorded with session details for compliance tracking."

### Monitoring Approach
> **System**: "Real-time monitoring tracks failed login attempts, unusual access patterns, and potential security threats for immediate response."

**Technical Notes**: Uses industry-standard encryption protocols with comprehensive audit logging. Implements rate limiting and suspicious activity detection. Designed for high availability and fault tolerance.

## Development Timeline
- **Phase 1:** Initial authentication framework implementation with basic security features.
- **Phase 2:** Enhanced security features including multi-factor authentication and session management.
- **Phase 3:** Advanced monitoring and analytics capabilities with automated threat detection.
- **Phase 4:** Full deployment with comprehensive security monitoring and compliance reporting.`

	filePath := filepath.Join(tempDir, "component.md")
	if err := os.WriteFile(filePath, []byte(originalContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	bundle := `<FILE_CHANGES>
<FILE_PATCH file_path="component.md">
@@ -5,6 +5,10 @@
 ## Overview
 This component handles user authentication and session management. It provides secure login functionality and maintains user state across application sessions.

+## Current Status
+Production-ready system actively serving authentication requests. Currently handling enterprise-scale deployments with comprehensive monitoring and automated security responses.
+
 ## Features
 The system includes **multi-factor authentication** and supports various authentication methods including password-based and token-based approaches.

@@ -26,7 +30,13 @@

 ## Known Issues
 - Memory usage increases with concurrent sessions
-- Memory usage increases with concurrent sessions
+- Rate limiting may affect legitimate high-frequency users
+- Token refresh requires network connectivity for validation
+
+## Integration
+- **External Services**: Connects with third-party identity providers for federated authentication
+- **Internal Systems**: Integrates with user management and audit logging components
+- **API Gateway**: Provides authentication tokens for downstream service authorization

 ## Design Goals
 This system prioritizes security and reliability over performance. The goal is to provide bulletproof authentication that scales with user growth while maintaining strict security standards.
@@ -35,6 +45,8 @@

 ### Error Handling
 > **System**: "Authentication failed. Please check your credentials and try again. If the problem persists, contact system administration."
+>
+> **System**: "For security reasons, detailed error information is available in the system logs accessible to administrators only."

 ### Logging Strategy
 > **System**: "All authentication attempts are logged for security auditing. Successful logins are recorded with session details for compliance tracking."
@@ -46,7 +58,9 @@

 ## Development Timeline
 - **Phase 1:** Initial authentication framework implementation with basic security features.
-- **Phase 2:** Enhanced security features including multi-factor authentication and session management.
+- **Phase 2:** Enhanced security features including multi-factor authentication and session management. Added comprehensive audit logging and monitoring capabilities.
 - **Phase 3:** Advanced monitoring and analytics capabilities with automated threat detection.
-- **Phase 4:** Full deployment with comprehensive security monitoring and compliance reporting.
+- **Phase 4:** Full deployment with comprehensive security monitoring and compliance reporting. Established disaster recovery procedures and high-availability configuration.
+
+**Evolution Notes**: Transitioned from basic authentication to enterprise-grade security platform with advanced threat detection and automated incident response capabilities.
</FILE_PATCH>
</FILE_CHANGES>`

	directives, _, found := envelope.Extract(bundle)
	if !found {
		t.Fatalf("expected a FILE_CHANGES block to be found")
	}

	executor, rc := newExecutor(operations.NewRealFileSystem())
	outcomes := executor.Execute(directives, tempDir, rc)
	for _, o := range outcomes {
		if !o.Success {
			t.Fatalf("directive %s failed: %s", o.FilePath, o.Error)
		}
	}

	modifiedContent, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("failed to read modified file: %v", err)
	}

	expectedContent := `# Software Component Documentation
#component #system #architecture

## Overview
This component handles user authentication and session management. It provides secure login functionality and maintains user state across application sessions.

## Current Status
Production-ready system actively serving authentication requests. Currently handling enterprise-scale deployments with comprehensive monitoring and automated security responses.

## Features
The system includes **multi-factor authentication** and supports various authentication methods including password-based and token-based approaches.

## Implementation
Clean, modular design with clear separation of concerns. Follows established security patterns and best practices.

## Dependencies
- Core authentication library for password hashing
- Session management utilities for state persistence
- Token validation services for API access

## Security Model
🔒 Defense in Depth / 🛡️ Zero Trust
Assumes all requests are potentially malicious until proven otherwise. Every operation requires explicit authentication and authorization.

## Core Principle
> "Security through transparency and verification, not obscurity."

## Known Issues
- Memory usage increases with concurrent sessions
- Rate limiting may affect legitimate high-frequency users
- Token refresh requires network connectivity for validation

## Integration
- **External Services**: Connects with third-party identity providers for federated authentication
- **Internal Systems**: Integrates with user management and audit logging components
- **API Gateway**: Provides authentication tokens for downstream service authorization

## Design Goals
This system prioritizes security and reliability over performance. The goal is to provide bulletproof authentication that scales with user growth while maintaining strict security standards.

## Implementation Notes

### Error Handling
> **System**: "Authentication failed. Please check your credentials and try again. If the problem persists, contact system administration."
>
> **System**: "For security reasons, detailed error information is available in the system logs accessible to administrators only."

### Logging Strategy
> **System**: "All authentication attempts are logged for security auditing. Successful logins are recorded with session details for compliance tracking."

### Monitoring Approach
> **System**: "Real-time monitoring tracks failed login attempts, unusual access patterns, and potential security threats for immediate response."

**Technical Notes**: Uses industry-standard encryption protocols with comprehensive audit logging. Implements rate limiting and suspicious activity detection. Designed for high availability and fault tolerance.

## Development Timeline
- **Phase 1:** Initial authentication framework implementation with basic security features.
- **Phase 2:** Enhanced security features including multi-factor authentication and session management. Added comprehensive audit logging and monitoring capabilities.
- **Phase 3:** Advanced monitoring and analytics capabilities with automated threat detection.
- **Phase 4:** Full deployment with comprehensive security monitoring and compliance reporting. Established disaster recovery procedures and high-availability configuration.

**Evolution Notes**: Transitioned from basic authentication to enterprise-grade security platform with advanced threat detection and automated incident response capabilities.`

	if strings.TrimSpace(string(modifiedContent)) != strings.TrimSpace(expectedContent) {
		t.Errorf("multiple hunks with original line numbers test failed.\n\nExpected:\n%s\n\nGot:\n%s", expectedContent, string(modifiedContent))
	}
}
