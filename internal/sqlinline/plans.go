package sqlinline

const QInsertPlan = `--sql 69f41337-47fa-414e-8371-c1eab3d89ab0
insert into plans (id, name, price_monthly, price_yearly, is_active, features, created_at)
values ($1::uuid, $2, $3, $4, $5, $6::jsonb, now())
returning created_at;
`

const QUpdatePlan = `--sql b06f22ae-d04a-4327-b267-31bd715539fc
update plans set
    name = $2,
    price_monthly = $3,
    price_yearly = $4,
    is_active = $5,
    features = $6::jsonb
where id = $1::uuid;
`

const QSelectPlanByID = `--sql 1cc4d35f-10c7-4a6d-9a66-808c7d182d66
select id::text, name, price_monthly::float8, price_yearly::float8, is_active, features, created_at
from plans
where id = $1::uuid
limit 1;
`

const QDeletePlan = `--sql 460e7804-5b43-4af3-a835-0b6e51a60bb1
delete from plans
where id = $1::uuid;
`

const QListPlans = `--sql a13c93b2-3595-40d3-9bb7-121ed5b37082
select id::text, name, price_monthly::float8, price_yearly::float8, is_active, features, created_at
from plans
where (not $1::boolean or is_active)
order by price_monthly asc;
`
