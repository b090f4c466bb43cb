package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pkg/errors"

	"github.com/AhmedMostafa129/Mahd/core/guard"
)

type view struct {
	Screen string      `json:"screen"`
	Data   interface{} `json:"data,omitempty"`
}

// request adapts a CLI path to what screen loaders read.
type request struct {
	ctx    context.Context
	params guard.Params
	query  url.Values
}

func (r request) Context() context.Context { return r.ctx }
func (r request) Param(name string) string { return r.params[name] }
func (r request) QueryParam(name string) string { return r.query.Get(name) }

// open evaluates the guard of the route at `path` against the saved session,
// then prints either where the portal would redirect or the screen's data.
func (cli *commandLine) open(path string) error {
	u, err := url.Parse(path)
	if err != nil {
		return errors.Wrap(err, "open")
	}
	r, params, ok := guard.Routes.Match(u.Path)
	if !ok {
		return errors.Errorf("no screen at %q", u.Path)
	}

	if r.IsRedirect() {
		fmt.Fprintf(cli.out, "redirect: %s\n", r.Target(params))
		return nil
	}
	if d := guard.Evaluate(r, cli.store, u.RequestURI()); !d.Allow {
		fmt.Fprintf(cli.out, "redirect: %s\n", d.Redirect)
		return nil
	}

	v := view{Screen: r.Screen}
	var loadErr error
	if load := cli.loaders[r.Screen]; load != nil {
		usr, _ := cli.store.User()
		v.Data, loadErr = load(request{ctx: cli.context(), params: params, query: u.Query()}, usr)
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, string(out))
	return loadErr
}
