// The config package encapsulates configuration for the orgdiff command.
//
// Configuration lives in a base directory rather than a single file path,
// mirroring how commands are invoked: the only argument to Load is the
// base directory, which may contain a file called 'config'. Each
// non-empty line of that file holds a key and a value separated by
// whitespace; lines starting with '#' are comments. Without a config file,
// Default applies.
package config
