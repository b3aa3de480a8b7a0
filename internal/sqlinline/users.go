package sqlinline

const QUpsertUser = `--sql 8e4f11d0-1de5-45ed-95c2-3ddae13f0fe7
insert into users (id, name, email, role, plan_id, subscription_status, created_at)
values ($1::uuid, $2, $3, $4, $5::uuid, $6, now())
on conflict (id) do update set
    name = excluded.name,
    email = excluded.email
returning role, plan_id::text, subscription_status, created_at;
`

const QUpdateUser = `--sql 0e5adedf-3990-401a-a657-0b957074f70b
update users set
    name = $2,
    email = $3,
    role = $4,
    plan_id = $5::uuid,
    subscription_status = $6
where id = $1::uuid;
`

const QSelectUserByID = `--sql ed570467-07a9-40b7-b3a6-47f9f156c313
select id::text, name, email, role, plan_id::text, subscription_status, created_at
from users
where id = $1::uuid
limit 1;
`

const QDeleteUser = `--sql 920722bf-8893-4da3-9dde-48e51d78b6fd
delete from users
where id = $1::uuid;
`

const QListUsers = `--sql 838bb87f-64ee-4fd4-9233-d1aec193bd24
select id::text, name, email, role, plan_id::text, subscription_status, created_at
from users
where ($1::text = '' or subscription_status = $1::text)
order by created_at desc;
`
