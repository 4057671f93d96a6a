// Package settings reads role settings files.
//
// A settings file is INI formatted. Every section except DEFAULT names a
// file to generate (relative to the role's output folder) and its keys are
// the variables handed to that file's template:
//
//	[DEFAULT]
//	domain = example.com
//
//	[etc/nginx/nginx.conf]
//	server_name = www.%(domain)s
//	port = %(port)s
//
// Values may reference other keys with %(name)s. Names resolve against the
// section's own keys, then DEFAULT, then the override variables supplied by
// the caller. Key names are case-insensitive; section names are not.
package settings
