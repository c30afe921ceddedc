// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration of the audrev command.
//
// Example configuration:
//
//	logging:
//	  level: info        # debug|info|warn|error
//	  format: text       # text|json
//	  output: stderr     # stdout|stderr|<file path>
//	decode:
//	  max_duration: 5m   # 0 disables the limit
//	  default_content_type: ""
//
// Keys left out of the file keep the values returned by Default.
package config
