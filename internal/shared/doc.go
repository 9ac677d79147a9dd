// Package shared holds helpers used by several packages that belong to no
// single layer. Test helpers live in the testutil subpackage.
package shared
